package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithAssets() Draft {
	d := Draft{ID: "draft-1", AuthorID: "user-1", AuthorName: "Ada"}
	d = Apply(d, TitleSet{Title: "My Show"})
	d = Apply(d, DescriptionSet{Description: "A show about things"})
	d = Apply(d, VoiceSelected{Voice: VoiceNova})
	d = Apply(d, VoicePromptSet{Prompt: "Read this script"})
	d = Apply(d, ImagePromptSet{Prompt: "A microphone on a desk"})
	d = Apply(d, AudioRequested{})
	d = Apply(d, AudioGenerated{Seq: 1, URL: "https://cdn/audio.mp3", Key: "audio-key", Duration: 12.5})
	d = Apply(d, ImageRequested{})
	d = Apply(d, ImageGenerated{Seq: 1, URL: "https://cdn/image.png", Key: "image-key"})
	return d
}

func TestApply_FieldEdits(t *testing.T) {
	d := Draft{}
	d = Apply(d, TitleSet{Title: "My Show"})
	d = Apply(d, DescriptionSet{Description: "A show about things"})
	d = Apply(d, VoicePromptSet{Prompt: "script"})
	d = Apply(d, ImagePromptSet{Prompt: "cover"})

	assert.Equal(t, "My Show", d.Title)
	assert.Equal(t, "A show about things", d.Description)
	assert.Equal(t, "script", d.VoicePrompt)
	assert.Equal(t, "cover", d.ImagePrompt)
}

func TestApply_AudioGeneratedCopiesExactValues(t *testing.T) {
	d := Draft{}
	d = Apply(d, AudioRequested{})
	before := d

	d = Apply(d, AudioGenerated{Seq: 1, URL: "https://cdn/a.mp3", Key: "k-1", Duration: 42.25})

	assert.Equal(t, "https://cdn/a.mp3", d.AudioURL)
	assert.Equal(t, "k-1", d.AudioKey)
	assert.Equal(t, 42.25, d.AudioDuration)

	// nothing else changed
	d.AudioURL, d.AudioKey, d.AudioDuration = "", "", 0
	assert.Equal(t, before, d)
}

func TestApply_ImageGeneratedCopiesExactValues(t *testing.T) {
	d := Draft{}
	d = Apply(d, ImageRequested{})

	d = Apply(d, ImageGenerated{Seq: 1, URL: "https://cdn/i.png", Key: "k-2"})

	assert.Equal(t, "https://cdn/i.png", d.ImageURL)
	assert.Equal(t, "k-2", d.ImageKey)
	assert.Zero(t, d.AudioURL)
}

func TestApply_StaleAudioResponseDiscarded(t *testing.T) {
	d := Draft{}
	d = Apply(d, AudioRequested{})
	d = Apply(d, AudioRequested{})
	require.Equal(t, uint64(2), d.AudioSeq)

	// the first request finishes after the second one was issued
	d = Apply(d, AudioGenerated{Seq: 1, URL: "https://cdn/old.mp3", Key: "old", Duration: 1})
	assert.Empty(t, d.AudioURL)

	d = Apply(d, AudioGenerated{Seq: 2, URL: "https://cdn/new.mp3", Key: "new", Duration: 2})
	assert.Equal(t, "https://cdn/new.mp3", d.AudioURL)

	// a still later stale reply cannot roll the state back
	d = Apply(d, AudioGenerated{Seq: 1, URL: "https://cdn/old.mp3", Key: "old", Duration: 1})
	assert.Equal(t, "https://cdn/new.mp3", d.AudioURL)
}

func TestApply_StaleImageResponseDiscarded(t *testing.T) {
	d := Draft{}
	d = Apply(d, ImageRequested{})
	d = Apply(d, ImageRequested{})

	d = Apply(d, ImageGenerated{Seq: 1, URL: "https://cdn/old.png", Key: "old"})
	assert.Empty(t, d.ImageURL)

	d = Apply(d, ImageGenerated{Seq: 2, URL: "https://cdn/new.png", Key: "new"})
	assert.Equal(t, "https://cdn/new.png", d.ImageURL)
}

func TestApply_SubmitFlag(t *testing.T) {
	d := Draft{}
	d = Apply(d, SubmitStarted{})
	assert.True(t, d.Submitting)

	d = Apply(d, SubmitFailed{})
	assert.False(t, d.Submitting)

	d = Apply(d, SubmitStarted{})
	d = Apply(d, SubmitSucceeded{})
	assert.False(t, d.Submitting)
}

func TestCanSubmit_ShortTitleBlocked(t *testing.T) {
	d := draftWithAssets()
	d = Apply(d, TitleSet{Title: ""})
	assert.ErrorIs(t, d.CanSubmit(), ErrTitleTooShort)

	d = Apply(d, TitleSet{Title: "x"})
	assert.ErrorIs(t, d.CanSubmit(), ErrTitleTooShort)
}

func TestCanSubmit_ShortDescriptionBlocked(t *testing.T) {
	d := draftWithAssets()
	d = Apply(d, DescriptionSet{Description: "v"})
	assert.ErrorIs(t, d.CanSubmit(), ErrDescriptionTooShort)
}

func TestCanSubmit_EmptyTitleValidDescriptionBlocked(t *testing.T) {
	d := draftWithAssets()
	d = Apply(d, TitleSet{Title: ""})
	d = Apply(d, DescriptionSet{Description: "valid description"})
	assert.ErrorIs(t, d.CanSubmit(), ErrTitleTooShort)
}

func TestCanSubmit_MissingAssetsBlocked(t *testing.T) {
	base := draftWithAssets()

	onlyAudio := base
	onlyAudio.ImageURL = ""
	assert.ErrorIs(t, onlyAudio.CanSubmit(), ErrAssetsMissing)

	onlyImage := base
	onlyImage.AudioURL = ""
	assert.ErrorIs(t, onlyImage.CanSubmit(), ErrAssetsMissing)

	noVoice := base
	noVoice.VoiceType = ""
	assert.ErrorIs(t, noVoice.CanSubmit(), ErrAssetsMissing)
}

func TestCanSubmit_ReentrantSubmitBlocked(t *testing.T) {
	d := draftWithAssets()
	d = Apply(d, SubmitStarted{})
	assert.ErrorIs(t, d.CanSubmit(), ErrSubmitInProgress)
}

func TestCanSubmit_CompleteDraftAllowed(t *testing.T) {
	d := draftWithAssets()
	assert.NoError(t, d.CanSubmit())
}

func TestCanGenerateAudio(t *testing.T) {
	var d Draft
	assert.ErrorIs(t, d.CanGenerateAudio(), ErrVoiceNotSelected)

	d = Apply(d, VoiceSelected{Voice: VoiceEcho})
	assert.ErrorIs(t, d.CanGenerateAudio(), ErrVoicePromptMissing)

	d = Apply(d, VoicePromptSet{Prompt: "say something"})
	assert.NoError(t, d.CanGenerateAudio())
}

func TestCanGenerateImage(t *testing.T) {
	var d Draft
	assert.ErrorIs(t, d.CanGenerateImage(), ErrImagePromptMissing)

	d = Apply(d, ImagePromptSet{Prompt: "cover art"})
	assert.NoError(t, d.CanGenerateImage())
}

func TestRecord_BundlesAllFieldsWithZeroViews(t *testing.T) {
	d := draftWithAssets()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	record := d.Record("podcast-1", now)

	assert.Equal(t, "podcast-1", record.ID)
	assert.Equal(t, "user-1", record.AuthorID)
	assert.Equal(t, "My Show", record.Title)
	assert.Equal(t, "A show about things", record.Description)
	assert.Equal(t, VoiceNova, record.VoiceType)
	assert.Equal(t, "Read this script", record.VoicePrompt)
	assert.Equal(t, "A microphone on a desk", record.ImagePrompt)
	assert.Equal(t, "https://cdn/audio.mp3", record.AudioURL)
	assert.Equal(t, "audio-key", record.AudioKey)
	assert.Equal(t, 12.5, record.AudioDuration)
	assert.Equal(t, "https://cdn/image.png", record.ImageURL)
	assert.Equal(t, "image-key", record.ImageKey)
	assert.Equal(t, int64(0), record.Views)
	assert.Equal(t, now, record.CreatedAt)
}

func TestParseVoiceType(t *testing.T) {
	voice, err := ParseVoiceType("nova")
	require.NoError(t, err)
	assert.Equal(t, VoiceNova, voice)

	_, err = ParseVoiceType("robot")
	assert.Error(t, err)
}

func TestVoiceSampleURL(t *testing.T) {
	assert.Equal(t, "/samples/onyx.mp3", VoiceOnyx.SampleURL())
}
