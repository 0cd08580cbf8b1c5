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

// UserRepository defines storage operations for users. User ids are assigned
// by the store on first save, never by the client.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, user *models.User) error
	SaveAll(ctx context.Context, users []*models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q *query.ListQuery) ([]*models.User, int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = "id, name, user_link, picture_link"

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	q := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user := &models.User{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&user.ID,
		&user.Name,
		&user.UserLink,
		&user.PictureLink,
	)
	if err != nil {
		return nil, db.WrapError(err, "get user by id")
	}

	return user, nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "user exists")
	}
	return exists, nil
}

// Save inserts a user and assigns its id when the id is zero; otherwise it
// updates the existing row in place.
func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		q := `
			INSERT INTO users (name, user_link, picture_link)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		err := r.pool.QueryRow(ctx, q, user.Name, user.UserLink, user.PictureLink).Scan(&user.ID)
		if err != nil {
			return db.WrapError(err, "insert user")
		}
		return nil
	}

	q := `
		UPDATE users
		SET name = $1,
		    user_link = $2,
		    picture_link = $3
		WHERE id = $4
	`
	_, err := r.pool.Exec(ctx, q, user.Name, user.UserLink, user.PictureLink, user.ID)
	if err != nil {
		return db.WrapError(err, "update user")
	}

	return nil
}

func (r *userRepository) SaveAll(ctx context.Context, users []*models.User) error {
	for _, user := range users {
		if err := r.Save(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete user")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.User, int, error) {
	whereClause, args := q.Where()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.WrapError(err, "count users")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, userColumns, whereClause, q.OrderBy("id"), len(args)+1, len(args)+2)

	args = append(args, q.Limit(), q.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, db.WrapError(err, "list users")
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func scanUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User

	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.UserLink,
			&user.PictureLink,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
