package domain

import (
	"errors"
	"fmt"
	"time"
)

type VoiceType string

const (
	VoiceAlloy   VoiceType = "alloy"
	VoiceShimmer VoiceType = "shimmer"
	VoiceNova    VoiceType = "nova"
	VoiceEcho    VoiceType = "echo"
	VoiceFable   VoiceType = "fable"
	VoiceOnyx    VoiceType = "onyx"
)

func VoiceTypes() []VoiceType {
	return []VoiceType{VoiceAlloy, VoiceShimmer, VoiceNova, VoiceEcho, VoiceFable, VoiceOnyx}
}

func ParseVoiceType(value string) (VoiceType, error) {
	for _, voice := range VoiceTypes() {
		if string(voice) == value {
			return voice, nil
		}
	}
	return "", fmt.Errorf("unknown voice type %q", value)
}

// SampleURL points at the short narration sample played when a voice is picked.
func (v VoiceType) SampleURL() string {
	return fmt.Sprintf("/samples/%s.mp3", v)
}

type AssetKind string

const (
	AudioAsset AssetKind = "audio"
	ImageAsset AssetKind = "image"
)

var ErrPodcastNotFound = errors.New("podcast not found")

type Podcast struct {
	ID            string    `db:"id" json:"id"`
	AuthorID      string    `db:"author_id" json:"authorId"`
	AuthorName    string    `db:"author_name" json:"authorName"`
	Title         string    `db:"title" json:"podcastTitle"`
	Description   string    `db:"description" json:"podcastDescription"`
	VoiceType     VoiceType `db:"voice_type" json:"voiceType"`
	VoicePrompt   string    `db:"voice_prompt" json:"voicePrompt"`
	ImagePrompt   string    `db:"image_prompt" json:"imagePrompt"`
	AudioURL      string    `db:"audio_url" json:"audioUrl"`
	AudioKey      string    `db:"audio_key" json:"audioStorageId"`
	AudioDuration float64   `db:"audio_duration" json:"audioDuration"`
	ImageURL      string    `db:"image_url" json:"imageUrl"`
	ImageKey      string    `db:"image_key" json:"imageStorageId"`
	Views         int64     `db:"views" json:"views"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// AuthorStats is one row of the "top podcasters by podcast count" aggregate.
type AuthorStats struct {
	AuthorID      string `db:"author_id" json:"authorId"`
	AuthorName    string `db:"author_name" json:"authorName"`
	TotalPodcasts int    `db:"total_podcasts" json:"totalPodcasts"`
}
