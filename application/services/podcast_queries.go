package services

import (
	"context"
	"strings"

	"github.com/Amdaxx/podcast/application/ports/inbound"
	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/domain"
)

const (
	trendingLimit      = 20
	topPodcastersLimit = 4
)

type podcastQueries struct {
	logger     outbound.LoggerPort
	repository outbound.PodcastRepositoryPort
}

func NewPodcastQueries(logger outbound.LoggerPort, repository outbound.PodcastRepositoryPort) inbound.PodcastQueryPort {
	return &podcastQueries{
		logger:     logger,
		repository: repository,
	}
}

func (q *podcastQueries) Discover(ctx context.Context, search string) ([]domain.Podcast, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return q.repository.Trending(ctx, trendingLimit)
	}
	return q.repository.Search(ctx, search)
}

func (q *podcastQueries) GetDetail(ctx context.Context, podcastID, viewerID string) (*inbound.PodcastDetail, error) {
	podcast, err := q.repository.GetByID(ctx, podcastID)
	if err != nil {
		return nil, err
	}

	// Views are counted on the read path; a failed increment should not
	// break the page, the count just lags by one.
	if err := q.repository.IncrementViews(ctx, podcastID); err != nil {
		q.logger.ErrorWithFields(err, "failed to increment views", map[string]interface{}{
			"podcastID": podcastID,
		})
	} else {
		podcast.Views++
	}

	return &inbound.PodcastDetail{
		Podcast: *podcast,
		IsOwner: viewerID != "" && viewerID == podcast.AuthorID,
	}, nil
}

func (q *podcastQueries) Similar(ctx context.Context, podcastID string) ([]domain.Podcast, error) {
	podcast, err := q.repository.GetByID(ctx, podcastID)
	if err != nil {
		return nil, err
	}
	return q.repository.SimilarByVoiceType(ctx, podcast.VoiceType, podcast.ID)
}

func (q *podcastQueries) TopPodcasters(ctx context.Context) ([]domain.AuthorStats, error) {
	return q.repository.TopAuthors(ctx, topPodcastersLimit)
}
