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

// CommentRepository defines storage operations for comments.
type CommentRepository interface {
	Get(ctx context.Context, id string) (*models.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, comment *models.Comment) error
	SaveAll(ctx context.Context, comments []*models.Comment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *query.ListQuery) ([]*models.Comment, int, error)

	// ListByVideo returns every comment on a video, in store order.
	ListByVideo(ctx context.Context, videoID string) ([]*models.Comment, error)

	// FindByAuthor returns the comment written by the given user, or
	// db.ErrNotFound. Each user authors at most one comment.
	FindByAuthor(ctx context.Context, userID int64) (*models.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = "id, video_id, text, created_on, author_id"

func (r *commentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	q := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1`, commentColumns)

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.Text,
		&comment.CreatedOn,
		&comment.AuthorID,
	)
	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}

	return comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "comment exists")
	}
	return exists, nil
}

func (r *commentRepository) Save(ctx context.Context, comment *models.Comment) error {
	q := `
		INSERT INTO comments (id, video_id, text, created_on, author_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET text = EXCLUDED.text,
		    created_on = EXCLUDED.created_on
	`

	_, err := r.pool.Exec(ctx, q,
		comment.ID,
		comment.VideoID,
		comment.Text,
		comment.CreatedOn,
		comment.AuthorID,
	)
	if err != nil {
		return db.WrapError(err, "save comment")
	}

	return nil
}

func (r *commentRepository) SaveAll(ctx context.Context, comments []*models.Comment) error {
	for _, comment := range comments {
		if err := r.Save(ctx, comment); err != nil {
			return err
		}
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete comment")
	}
	return nil
}

func (r *commentRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Comment, int, error) {
	whereClause, args := q.Where()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM comments %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.WrapError(err, "count comments")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM comments
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, commentColumns, whereClause, q.OrderBy("id"), len(args)+1, len(args)+2)

	args = append(args, q.Limit(), q.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, db.WrapError(err, "list comments")
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string) ([]*models.Comment, error) {
	q := fmt.Sprintf(`SELECT %s FROM comments WHERE video_id = $1 ORDER BY id`, commentColumns)

	rows, err := r.pool.Query(ctx, q, videoID)
	if err != nil {
		return nil, db.WrapError(err, "list comments by video")
	}
	defer rows.Close()

	return scanComments(rows)
}

func (r *commentRepository) FindByAuthor(ctx context.Context, userID int64) (*models.Comment, error) {
	q := fmt.Sprintf(`SELECT %s FROM comments WHERE author_id = $1`, commentColumns)

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.Text,
		&comment.CreatedOn,
		&comment.AuthorID,
	)
	if err != nil {
		return nil, db.WrapError(err, "find comment by author")
	}

	return comment, nil
}

func scanComments(rows pgx.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment

	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.VideoID,
			&comment.Text,
			&comment.CreatedOn,
			&comment.AuthorID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
