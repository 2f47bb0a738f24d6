package outbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

type PodcastRepositoryPort interface {
	Create(ctx context.Context, podcast domain.Podcast) error
	GetByID(ctx context.Context, id string) (*domain.Podcast, error)
	Search(ctx context.Context, term string) ([]domain.Podcast, error)
	Trending(ctx context.Context, limit int) ([]domain.Podcast, error)
	SimilarByVoiceType(ctx context.Context, voice domain.VoiceType, excludeID string) ([]domain.Podcast, error)
	TopAuthors(ctx context.Context, limit int) ([]domain.AuthorStats, error)
	IncrementViews(ctx context.Context, id string) error
}
