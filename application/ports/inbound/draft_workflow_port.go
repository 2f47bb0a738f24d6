package inbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

type CreateDraftParams struct {
	AuthorID   string
	AuthorName string
}

// UpdateDraftParams carries partial field edits; nil pointers leave the
// corresponding field untouched.
type UpdateDraftParams struct {
	Title       *string
	Description *string
	VoicePrompt *string
	ImagePrompt *string
}

type DraftWorkflowPort interface {
	CreateDraft(ctx context.Context, params CreateDraftParams) (*domain.Draft, error)
	GetDraft(ctx context.Context, draftID, userID string) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, draftID, userID string, params UpdateDraftParams) (*domain.Draft, error)
	SelectVoice(ctx context.Context, draftID, userID string, voice domain.VoiceType) (*domain.Draft, error)

	// RequestAudio and RequestImage kick off generation on the worker
	// pool and return the request token; completion arrives through the
	// draft's notice stream.
	RequestAudio(ctx context.Context, draftID, userID string) (uint64, error)
	RequestImage(ctx context.Context, draftID, userID string) (uint64, error)

	Submit(ctx context.Context, draftID, userID string) (*domain.Podcast, error)

	// Subscribe returns a notice channel for the draft plus a cancel
	// function that must be called when the listener goes away.
	Subscribe(draftID string) (<-chan domain.DraftNotice, func())
}
