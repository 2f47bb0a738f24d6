package domain

import (
	"errors"
	"strings"
	"time"
)

// A Draft holds everything collected while a podcast is being authored:
// the text fields, the chosen voice, and the generated assets. It is a
// plain value; every mutation goes through Apply so each transition can
// be tested without any HTTP or storage in the loop.
type Draft struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Title       string    `json:"podcastTitle"`
	Description string    `json:"podcastDescription"`
	VoiceType   VoiceType `json:"voiceType"`
	VoicePrompt string    `json:"voicePrompt"`
	ImagePrompt string    `json:"imagePrompt"`

	AudioURL      string  `json:"audioUrl"`
	AudioKey      string  `json:"audioStorageId"`
	AudioDuration float64 `json:"audioDuration"`
	ImageURL      string  `json:"imageUrl"`
	ImageKey      string  `json:"imageStorageId"`

	// AudioSeq and ImageSeq are the latest generation request tokens
	// handed out per asset kind. A completion carrying an older token
	// lost the race to a newer request and is discarded.
	AudioSeq uint64 `json:"audioSeq"`
	ImageSeq uint64 `json:"imageSeq"`

	Submitting bool      `json:"submitting"`
	CreatedAt  time.Time `json:"createdAt"`
}

const minFieldLength = 2

var (
	ErrTitleTooShort       = errors.New("title must be at least 2 characters")
	ErrDescriptionTooShort = errors.New("description must be at least 2 characters")
	ErrAssetsMissing       = errors.New("please generate audio and image")
	ErrSubmitInProgress    = errors.New("submission already in progress")
	ErrVoiceNotSelected    = errors.New("select a voice before generating audio")
	ErrVoicePromptMissing  = errors.New("provide a prompt to generate audio")
	ErrImagePromptMissing  = errors.New("provide a prompt to generate a thumbnail")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrNotDraftOwner       = errors.New("draft belongs to another user")
)

// CanSubmit reports whether the draft satisfies the submission guard.
// The returned error doubles as the user-facing notification text.
func (d Draft) CanSubmit() error {
	if d.Submitting {
		return ErrSubmitInProgress
	}
	if len(strings.TrimSpace(d.Title)) < minFieldLength {
		return ErrTitleTooShort
	}
	if len(strings.TrimSpace(d.Description)) < minFieldLength {
		return ErrDescriptionTooShort
	}
	if d.AudioURL == "" || d.ImageURL == "" || d.VoiceType == "" {
		return ErrAssetsMissing
	}
	return nil
}

// CanGenerateAudio gates audio generation: a voice must be chosen and a
// prompt supplied before the speech collaborator is called.
func (d Draft) CanGenerateAudio() error {
	if d.VoiceType == "" {
		return ErrVoiceNotSelected
	}
	if strings.TrimSpace(d.VoicePrompt) == "" {
		return ErrVoicePromptMissing
	}
	return nil
}

func (d Draft) CanGenerateImage() error {
	if strings.TrimSpace(d.ImagePrompt) == "" {
		return ErrImagePromptMissing
	}
	return nil
}

// Record assembles the podcast persisted on successful submission.
// Views always start at zero; they are incremented by reads later on.
func (d Draft) Record(id string, now time.Time) Podcast {
	return Podcast{
		ID:            id,
		AuthorID:      d.AuthorID,
		AuthorName:    d.AuthorName,
		Title:         d.Title,
		Description:   d.Description,
		VoiceType:     d.VoiceType,
		VoicePrompt:   d.VoicePrompt,
		ImagePrompt:   d.ImagePrompt,
		AudioURL:      d.AudioURL,
		AudioKey:      d.AudioKey,
		AudioDuration: d.AudioDuration,
		ImageURL:      d.ImageURL,
		ImageKey:      d.ImageKey,
		Views:         0,
		CreatedAt:     now,
	}
}

type DraftEvent interface {
	isDraftEvent()
}

type TitleSet struct{ Title string }

type DescriptionSet struct{ Description string }

type VoicePromptSet struct{ Prompt string }

type ImagePromptSet struct{ Prompt string }

type VoiceSelected struct{ Voice VoiceType }

// AudioRequested allocates the next audio generation token.
type AudioRequested struct{}

// AudioGenerated carries the collaborator's response. Seq must match the
// draft's latest audio token or the event is a no-op.
type AudioGenerated struct {
	Seq      uint64
	URL      string
	Key      string
	Duration float64
}

type ImageRequested struct{}

type ImageGenerated struct {
	Seq uint64
	URL string
	Key string
}

type SubmitStarted struct{}

type SubmitFailed struct{}

type SubmitSucceeded struct{}

func (TitleSet) isDraftEvent()        {}
func (DescriptionSet) isDraftEvent()  {}
func (VoicePromptSet) isDraftEvent()  {}
func (ImagePromptSet) isDraftEvent()  {}
func (VoiceSelected) isDraftEvent()   {}
func (AudioRequested) isDraftEvent()  {}
func (AudioGenerated) isDraftEvent()  {}
func (ImageRequested) isDraftEvent()  {}
func (ImageGenerated) isDraftEvent()  {}
func (SubmitStarted) isDraftEvent()   {}
func (SubmitFailed) isDraftEvent()    {}
func (SubmitSucceeded) isDraftEvent() {}

// Apply is the pure reducer over draft state. A failed generation is not
// an event at all: nothing about the draft changed, so there is nothing
// to apply and no partial asset fields ever appear.
func Apply(d Draft, event DraftEvent) Draft {
	switch e := event.(type) {
	case TitleSet:
		d.Title = e.Title
	case DescriptionSet:
		d.Description = e.Description
	case VoicePromptSet:
		d.VoicePrompt = e.Prompt
	case ImagePromptSet:
		d.ImagePrompt = e.Prompt
	case VoiceSelected:
		d.VoiceType = e.Voice
	case AudioRequested:
		d.AudioSeq++
	case AudioGenerated:
		if e.Seq != d.AudioSeq {
			return d
		}
		d.AudioURL = e.URL
		d.AudioKey = e.Key
		d.AudioDuration = e.Duration
	case ImageRequested:
		d.ImageSeq++
	case ImageGenerated:
		if e.Seq != d.ImageSeq {
			return d
		}
		d.ImageURL = e.URL
		d.ImageKey = e.Key
	case SubmitStarted:
		d.Submitting = true
	case SubmitFailed:
		d.Submitting = false
	case SubmitSucceeded:
		d.Submitting = false
	}
	return d
}
