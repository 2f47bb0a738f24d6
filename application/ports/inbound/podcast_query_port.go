package inbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

type PodcastDetail struct {
	Podcast domain.Podcast `json:"podcast"`
	IsOwner bool           `json:"isOwner"`
}

type PodcastQueryPort interface {
	// Discover returns the trending ordering when search is empty and a
	// free-text match otherwise.
	Discover(ctx context.Context, search string) ([]domain.Podcast, error)
	GetDetail(ctx context.Context, podcastID, viewerID string) (*PodcastDetail, error)
	Similar(ctx context.Context, podcastID string) ([]domain.Podcast, error)
	TopPodcasters(ctx context.Context) ([]domain.AuthorStats, error)
}
