package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/Amdaxx/podcast/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoFixture(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDb, "sqlmock")
	return db, mock, func() { _ = mockDb.Close() }
}

func podcastRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "author_id", "author_name", "title", "description", "voice_type",
		"voice_prompt", "image_prompt", "audio_url", "audio_key", "audio_duration",
		"image_url", "image_key", "views", "created_at",
	})
}

func TestPostgresPodcastRepository_Create(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	mock.ExpectExec("INSERT INTO podcasts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), domain.Podcast{
		ID:          "p1",
		AuthorID:    "user-1",
		AuthorName:  "Ada",
		Title:       "My Show",
		Description: "A show about things",
		VoiceType:   domain.VoiceNova,
		AudioURL:    "https://cdn/a.mp3",
		ImageURL:    "https://cdn/i.png",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPodcastRepository_GetByIDNotFound(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(podcastRows())

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPodcastNotFound)
}

func TestPostgresPodcastRepository_Search(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	rows := podcastRows().AddRow(
		"p1", "user-1", "Ada", "Jazz Hour", "All about jazz", "nova",
		"script", "cover", "https://cdn/a.mp3", "a-key", 120.5,
		"https://cdn/i.png", "i-key", 9, time.Now(),
	)
	mock.ExpectQuery("SELECT \\* FROM podcasts").
		WithArgs("jazz").
		WillReturnRows(rows)

	podcasts, err := repo.Search(context.Background(), "jazz")
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	assert.Equal(t, "Jazz Hour", podcasts[0].Title)
	assert.Equal(t, domain.VoiceNova, podcasts[0].VoiceType)
}

func TestPostgresPodcastRepository_TrendingOrdersByViews(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	rows := podcastRows().
		AddRow("p1", "u1", "Ada", "Hot", "d1", "nova", "", "", "a", "ak", 1.0, "i", "ik", 100, time.Now()).
		AddRow("p2", "u2", "Grace", "Warm", "d2", "echo", "", "", "a", "ak", 1.0, "i", "ik", 10, time.Now())
	mock.ExpectQuery("ORDER BY views DESC").
		WithArgs(20).
		WillReturnRows(rows)

	podcasts, err := repo.Trending(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, podcasts, 2)
	assert.Equal(t, "p1", podcasts[0].ID)
}

func TestPostgresPodcastRepository_SimilarByVoiceType(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	mock.ExpectQuery(`WHERE voice_type = \$1 AND id <> \$2`).
		WithArgs("nova", "p1").
		WillReturnRows(podcastRows())

	podcasts, err := repo.SimilarByVoiceType(context.Background(), domain.VoiceNova, "p1")
	require.NoError(t, err)
	assert.Empty(t, podcasts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPodcastRepository_TopAuthors(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	rows := sqlmock.NewRows([]string{"author_id", "author_name", "total_podcasts"}).
		AddRow("user-1", "Ada", 12).
		AddRow("user-2", "Grace", 7)
	mock.ExpectQuery("GROUP BY author_id, author_name").
		WithArgs(4).
		WillReturnRows(rows)

	stats, err := repo.TopAuthors(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 12, stats[0].TotalPodcasts)
}

func TestPostgresPodcastRepository_IncrementViews(t *testing.T) {
	db, mock, closeDb := newRepoFixture(t)
	defer closeDb()

	repo := NewPostgresPodcastRepository(db, NewZerologWrapper())

	mock.ExpectExec("UPDATE podcasts SET views = views \\+ 1").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), "p1"))

	mock.ExpectExec("UPDATE podcasts SET views = views \\+ 1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementViews(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPodcastNotFound)
}
