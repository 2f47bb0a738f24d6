package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database driver
)

type postgresPodcastRepository struct {
	logger outbound.LoggerPort
	db     *sqlx.DB
}

func NewPostgresPodcastRepository(db *sqlx.DB, logger outbound.LoggerPort) outbound.PodcastRepositoryPort {
	return &postgresPodcastRepository{
		logger: logger,
		db:     db,
	}
}

func (r *postgresPodcastRepository) Create(ctx context.Context, podcast domain.Podcast) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO podcasts (
			id, author_id, author_name, title, description, voice_type,
			voice_prompt, image_prompt, audio_url, audio_key, audio_duration,
			image_url, image_key, views, created_at
		) VALUES (
			:id, :author_id, :author_name, :title, :description, :voice_type,
			:voice_prompt, :image_prompt, :audio_url, :audio_key, :audio_duration,
			:image_url, :image_key, :views, :created_at
		)`, podcast)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to insert podcast", map[string]interface{}{
			"podcastID": podcast.ID,
		})
	}
	return err
}

func (r *postgresPodcastRepository) GetByID(ctx context.Context, id string) (*domain.Podcast, error) {
	var podcast domain.Podcast
	err := r.db.GetContext(ctx, &podcast, "SELECT * FROM podcasts WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPodcastNotFound
	}
	if err != nil {
		return nil, err
	}
	return &podcast, nil
}

func (r *postgresPodcastRepository) Search(ctx context.Context, term string) ([]domain.Podcast, error) {
	podcasts := []domain.Podcast{}
	err := r.db.SelectContext(ctx, &podcasts, `
		SELECT * FROM podcasts
		WHERE title ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		   OR author_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`, term)
	return podcasts, err
}

func (r *postgresPodcastRepository) Trending(ctx context.Context, limit int) ([]domain.Podcast, error) {
	podcasts := []domain.Podcast{}
	err := r.db.SelectContext(ctx, &podcasts, `
		SELECT * FROM podcasts
		ORDER BY views DESC, created_at DESC
		LIMIT $1`, limit)
	return podcasts, err
}

func (r *postgresPodcastRepository) SimilarByVoiceType(ctx context.Context, voice domain.VoiceType, excludeID string) ([]domain.Podcast, error) {
	podcasts := []domain.Podcast{}
	err := r.db.SelectContext(ctx, &podcasts, `
		SELECT * FROM podcasts
		WHERE voice_type = $1 AND id <> $2
		ORDER BY views DESC, created_at DESC`, voice, excludeID)
	return podcasts, err
}

func (r *postgresPodcastRepository) TopAuthors(ctx context.Context, limit int) ([]domain.AuthorStats, error) {
	stats := []domain.AuthorStats{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT author_id, author_name, COUNT(*) AS total_podcasts
		FROM podcasts
		GROUP BY author_id, author_name
		ORDER BY total_podcasts DESC, author_name ASC
		LIMIT $1`, limit)
	return stats, err
}

func (r *postgresPodcastRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE podcasts SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrPodcastNotFound
	}
	return nil
}
