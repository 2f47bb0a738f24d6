package dto

import "github.com/Amdaxx/podcast/domain"

type UpdateDraftRequest struct {
	Title       *string `json:"podcastTitle" binding:"omitempty,min=2"`
	Description *string `json:"podcastDescription" binding:"omitempty,min=2"`
	VoicePrompt *string `json:"voicePrompt"`
	ImagePrompt *string `json:"imagePrompt"`
}

type SelectVoiceRequest struct {
	VoiceType string `json:"voiceType" binding:"required"`
}

type SelectVoiceResponse struct {
	Draft domain.Draft `json:"draft"`
	// SampleURL is the short narration preview played on selection.
	SampleURL string `json:"sampleUrl"`
}

type GenerationAcceptedResponse struct {
	DraftID string `json:"draftId"`
	Token   uint64 `json:"token"`
}

type SubmitResponse struct {
	PodcastID string `json:"podcastId"`
	Message   string `json:"message"`
}
