package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
)

// CaptionRepository defines storage operations for captions.
type CaptionRepository interface {
	Get(ctx context.Context, id string) (*models.Caption, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, caption *models.Caption) error
	SaveAll(ctx context.Context, captions []*models.Caption) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *query.ListQuery) ([]*models.Caption, int, error)

	// ListByVideo returns every caption of a video, in store order.
	ListByVideo(ctx context.Context, videoID string) ([]*models.Caption, error)
}

type captionRepository struct {
	pool *pgxpool.Pool
}

// NewCaptionRepository creates a new CaptionRepository.
func NewCaptionRepository(pool *pgxpool.Pool) CaptionRepository {
	return &captionRepository{pool: pool}
}

const captionColumns = "id, video_id, name, language"

func (r *captionRepository) Get(ctx context.Context, id string) (*models.Caption, error) {
	q := fmt.Sprintf(`SELECT %s FROM captions WHERE id = $1`, captionColumns)

	caption := &models.Caption{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&caption.ID,
		&caption.VideoID,
		&caption.Name,
		&caption.Language,
	)
	if err != nil {
		return nil, db.WrapError(err, "get caption by id")
	}

	return caption, nil
}

func (r *captionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM captions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "caption exists")
	}
	return exists, nil
}

func (r *captionRepository) Save(ctx context.Context, caption *models.Caption) error {
	q := `
		INSERT INTO captions (id, video_id, name, language)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    language = EXCLUDED.language
	`

	_, err := r.pool.Exec(ctx, q,
		caption.ID,
		caption.VideoID,
		caption.Name,
		caption.Language,
	)
	if err != nil {
		return db.WrapError(err, "save caption")
	}

	return nil
}

func (r *captionRepository) SaveAll(ctx context.Context, captions []*models.Caption) error {
	for _, caption := range captions {
		if err := r.Save(ctx, caption); err != nil {
			return err
		}
	}
	return nil
}

func (r *captionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM captions WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete caption")
	}
	return nil
}

func (r *captionRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Caption, int, error) {
	whereClause, args := q.Where()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM captions %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.WrapError(err, "count captions")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM captions
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, captionColumns, whereClause, q.OrderBy("id"), len(args)+1, len(args)+2)

	args = append(args, q.Limit(), q.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, db.WrapError(err, "list captions")
	}
	defer rows.Close()

	captions, err := scanCaptions(rows)
	if err != nil {
		return nil, 0, err
	}

	return captions, total, nil
}

func (r *captionRepository) ListByVideo(ctx context.Context, videoID string) ([]*models.Caption, error) {
	q := fmt.Sprintf(`SELECT %s FROM captions WHERE video_id = $1 ORDER BY id`, captionColumns)

	rows, err := r.pool.Query(ctx, q, videoID)
	if err != nil {
		return nil, db.WrapError(err, "list captions by video")
	}
	defer rows.Close()

	return scanCaptions(rows)
}

func scanCaptions(rows pgx.Rows) ([]*models.Caption, error) {
	var captions []*models.Caption

	for rows.Next() {
		caption := &models.Caption{}
		err := rows.Scan(
			&caption.ID,
			&caption.VideoID,
			&caption.Name,
			&caption.Language,
		)
		if err != nil {
			return nil, fmt.Errorf("scan caption: %w", err)
		}
		captions = append(captions, caption)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate captions: %w", err)
	}

	return captions, nil
}
