package service

import (
	"context"
	"strconv"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/repository"
)

// UserService orchestrates user operations. Users are created implicitly as
// comment authors, so there is no Create here.
type UserService struct {
	users    repository.UserRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	cascade  *Cascade
	events   EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(
	users repository.UserRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	cascade *Cascade,
	events EventPublisher,
) *UserService {
	return &UserService{
		users:    users,
		videos:   videos,
		comments: comments,
		cascade:  cascade,
		events:   events,
	}
}

// List returns one page of users.
func (s *UserService) List(ctx context.Context, q *query.ListQuery) ([]*models.User, int, error) {
	return s.users.List(ctx, q)
}

// Get returns one user. The key comes in as text and must parse as a number.
func (s *UserService) Get(ctx context.Context, key string) (*models.User, error) {
	id, err := parseUserID(key)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("user", key)
		}
		return nil, err
	}
	return user, nil
}

// ListByVideo returns the authors of the comments on an existing video.
func (s *UserService) ListByVideo(ctx context.Context, videoID string) ([]*models.User, error) {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("video", videoID)
	}

	comments, err := s.comments.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(comments))
	seen := make(map[int64]bool, len(comments))
	for _, comment := range comments {
		if seen[comment.AuthorID] {
			continue
		}
		seen[comment.AuthorID] = true

		author, err := s.users.Get(ctx, comment.AuthorID)
		if err != nil {
			if db.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		users = append(users, author)
	}
	return users, nil
}

// Update applies the non-nil fields of the payload. The id is never modified.
func (s *UserService) Update(ctx context.Context, key string, req *models.UpdateUserRequest) error {
	id, err := parseUserID(key)
	if err != nil {
		return err
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("user", key)
		}
		return err
	}

	user.Apply(req)
	return s.users.Save(ctx, user)
}

// Delete removes the user and the comment they authored, if any.
func (s *UserService) Delete(ctx context.Context, key string) error {
	id, err := parseUserID(key)
	if err != nil {
		return err
	}

	if err := s.cascade.DeleteUser(ctx, id, key); err != nil {
		return err
	}

	publishEvent(ctx, s.events, "user", "deleted", key)
	return nil
}

func parseUserID(key string) (int64, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, query.ErrMalformedFilterValue
	}
	return id, nil
}
