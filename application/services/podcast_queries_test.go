package services

import (
	"context"
	"testing"

	"github.com/Amdaxx/podcast/domain"
	"github.com/Amdaxx/podcast/infrastructure/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queryRepoFixture struct {
	fakePodcastRepository
	byID         map[string]domain.Podcast
	trending     []domain.Podcast
	searched     []domain.Podcast
	similar      []domain.Podcast
	topAuthors   []domain.AuthorStats
	searchTerm   string
	similarVoice domain.VoiceType
	similarSkip  string
	viewsBumped  []string
}

func (f *queryRepoFixture) GetByID(_ context.Context, id string) (*domain.Podcast, error) {
	podcast, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrPodcastNotFound
	}
	return &podcast, nil
}

func (f *queryRepoFixture) Search(_ context.Context, term string) ([]domain.Podcast, error) {
	f.searchTerm = term
	return f.searched, nil
}

func (f *queryRepoFixture) Trending(_ context.Context, _ int) ([]domain.Podcast, error) {
	return f.trending, nil
}

func (f *queryRepoFixture) SimilarByVoiceType(_ context.Context, voice domain.VoiceType, excludeID string) ([]domain.Podcast, error) {
	f.similarVoice = voice
	f.similarSkip = excludeID
	return f.similar, nil
}

func (f *queryRepoFixture) TopAuthors(_ context.Context, _ int) ([]domain.AuthorStats, error) {
	return f.topAuthors, nil
}

func (f *queryRepoFixture) IncrementViews(_ context.Context, id string) error {
	f.viewsBumped = append(f.viewsBumped, id)
	return nil
}

func TestPodcastQueries_DiscoverEmptySearchReturnsTrending(t *testing.T) {
	repo := &queryRepoFixture{
		trending: []domain.Podcast{{ID: "p1"}, {ID: "p2"}},
	}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	podcasts, err := queries.Discover(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, podcasts, 2)
	assert.Empty(t, repo.searchTerm)
}

func TestPodcastQueries_DiscoverWithTermSearches(t *testing.T) {
	repo := &queryRepoFixture{
		searched: []domain.Podcast{{ID: "p3"}},
	}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	podcasts, err := queries.Discover(context.Background(), "jazz history")
	require.NoError(t, err)
	assert.Len(t, podcasts, 1)
	assert.Equal(t, "jazz history", repo.searchTerm)
}

func TestPodcastQueries_GetDetailComputesOwnershipAndCountsView(t *testing.T) {
	repo := &queryRepoFixture{
		byID: map[string]domain.Podcast{
			"p1": {ID: "p1", AuthorID: "user-1", Views: 7},
		},
	}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	detail, err := queries.GetDetail(context.Background(), "p1", "user-1")
	require.NoError(t, err)
	assert.True(t, detail.IsOwner)
	assert.Equal(t, int64(8), detail.Podcast.Views)
	assert.Equal(t, []string{"p1"}, repo.viewsBumped)

	detail, err = queries.GetDetail(context.Background(), "p1", "user-2")
	require.NoError(t, err)
	assert.False(t, detail.IsOwner)

	// anonymous viewers never own anything
	detail, err = queries.GetDetail(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.False(t, detail.IsOwner)
}

func TestPodcastQueries_GetDetailUnknownID(t *testing.T) {
	repo := &queryRepoFixture{byID: map[string]domain.Podcast{}}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	_, err := queries.GetDetail(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrPodcastNotFound)
}

func TestPodcastQueries_SimilarUsesVoiceTypeAndExcludesSelf(t *testing.T) {
	repo := &queryRepoFixture{
		byID: map[string]domain.Podcast{
			"p1": {ID: "p1", VoiceType: domain.VoiceNova},
		},
		similar: []domain.Podcast{{ID: "p9", VoiceType: domain.VoiceNova}},
	}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	podcasts, err := queries.Similar(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, podcasts, 1)
	assert.Equal(t, domain.VoiceNova, repo.similarVoice)
	assert.Equal(t, "p1", repo.similarSkip)
}

func TestPodcastQueries_TopPodcasters(t *testing.T) {
	repo := &queryRepoFixture{
		topAuthors: []domain.AuthorStats{
			{AuthorID: "user-1", AuthorName: "Ada", TotalPodcasts: 5},
		},
	}
	queries := NewPodcastQueries(adapters.NewZerologWrapper(), repo)

	stats, err := queries.TopPodcasters(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 5, stats[0].TotalPodcasts)
}
