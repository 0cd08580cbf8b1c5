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

// VideoRepository defines storage operations for videos.
type VideoRepository interface {
	Get(ctx context.Context, id string) (*models.Video, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, video *models.Video) error
	SaveAll(ctx context.Context, videos []*models.Video) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *query.ListQuery) ([]*models.Video, int, error)

	// ListByChannel returns every video owned by a channel, in store order.
	// Used for hydration and for the delete cascade.
	ListByChannel(ctx context.Context, channelID string) ([]*models.Video, error)
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

const videoColumns = "id, channel_id, name, description, release_time"

func (r *videoRepository) Get(ctx context.Context, id string) (*models.Video, error) {
	q := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&video.ID,
		&video.ChannelID,
		&video.Name,
		&video.Description,
		&video.ReleaseTime,
	)
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "video exists")
	}
	return exists, nil
}

func (r *videoRepository) Save(ctx context.Context, video *models.Video) error {
	q := `
		INSERT INTO videos (id, channel_id, name, description, release_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description
	`

	_, err := r.pool.Exec(ctx, q,
		video.ID,
		video.ChannelID,
		video.Name,
		video.Description,
		video.ReleaseTime,
	)
	if err != nil {
		return db.WrapError(err, "save video")
	}

	return nil
}

func (r *videoRepository) SaveAll(ctx context.Context, videos []*models.Video) error {
	for _, video := range videos {
		if err := r.Save(ctx, video); err != nil {
			return err
		}
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete video")
	}
	return nil
}

func (r *videoRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Video, int, error) {
	whereClause, args := q.Where()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM videos %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.WrapError(err, "count videos")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM videos
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, videoColumns, whereClause, q.OrderBy("id"), len(args)+1, len(args)+2)

	args = append(args, q.Limit(), q.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	videos, err := scanVideos(rows)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

func (r *videoRepository) ListByChannel(ctx context.Context, channelID string) ([]*models.Video, error) {
	q := fmt.Sprintf(`SELECT %s FROM videos WHERE channel_id = $1 ORDER BY id`, videoColumns)

	rows, err := r.pool.Query(ctx, q, channelID)
	if err != nil {
		return nil, db.WrapError(err, "list videos by channel")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	var videos []*models.Video

	for rows.Next() {
		video := &models.Video{}
		err := rows.Scan(
			&video.ID,
			&video.ChannelID,
			&video.Name,
			&video.Description,
			&video.ReleaseTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
