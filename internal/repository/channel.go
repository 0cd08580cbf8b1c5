// Package repository provides PostgreSQL-backed storage for the catalogue
// entities. Every repository speaks raw SQL over a pgx pool and maps driver
// errors through the db package.
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

// ChannelRepository defines storage operations for channels.
type ChannelRepository interface {
	Get(ctx context.Context, id string) (*models.Channel, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, channel *models.Channel) error
	SaveAll(ctx context.Context, channels []*models.Channel) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *query.ListQuery) ([]*models.Channel, int, error)
}

type channelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(pool *pgxpool.Pool) ChannelRepository {
	return &channelRepository{pool: pool}
}

func (r *channelRepository) Get(ctx context.Context, id string) (*models.Channel, error) {
	q := `
		SELECT id, name, description, created_time
		FROM channels
		WHERE id = $1
	`

	channel := &models.Channel{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&channel.ID,
		&channel.Name,
		&channel.Description,
		&channel.CreatedTime,
	)
	if err != nil {
		return nil, db.WrapError(err, "get channel by id")
	}

	return channel, nil
}

func (r *channelRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM channels WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "channel exists")
	}
	return exists, nil
}

func (r *channelRepository) Save(ctx context.Context, channel *models.Channel) error {
	q := `
		INSERT INTO channels (id, name, description, created_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description
	`

	_, err := r.pool.Exec(ctx, q,
		channel.ID,
		channel.Name,
		channel.Description,
		channel.CreatedTime,
	)
	if err != nil {
		return db.WrapError(err, "save channel")
	}

	return nil
}

func (r *channelRepository) SaveAll(ctx context.Context, channels []*models.Channel) error {
	for _, channel := range channels {
		if err := r.Save(ctx, channel); err != nil {
			return err
		}
	}
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete channel")
	}
	return nil
}

func (r *channelRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Channel, int, error) {
	whereClause, args := q.Where()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM channels %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.WrapError(err, "count channels")
	}

	listQuery := fmt.Sprintf(`
		SELECT id, name, description, created_time
		FROM channels
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, whereClause, q.OrderBy("id"), len(args)+1, len(args)+2)

	args = append(args, q.Limit(), q.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, db.WrapError(err, "list channels")
	}
	defer rows.Close()

	channels, err := scanChannels(rows)
	if err != nil {
		return nil, 0, err
	}

	return channels, total, nil
}

func scanChannels(rows pgx.Rows) ([]*models.Channel, error) {
	var channels []*models.Channel

	for rows.Next() {
		channel := &models.Channel{}
		err := rows.Scan(
			&channel.ID,
			&channel.Name,
			&channel.Description,
			&channel.CreatedTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}
