package service

import (
	"context"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/repository"
)

// CommentService orchestrates comment operations.
type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	users    repository.UserRepository
	cascade  *Cascade
	events   EventPublisher
}

// NewCommentService creates a new CommentService. events may be nil.
func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
	cascade *Cascade,
	events EventPublisher,
) *CommentService {
	return &CommentService{
		comments: comments,
		videos:   videos,
		users:    users,
		cascade:  cascade,
		events:   events,
	}
}

// List returns one page of comments with authors attached.
func (s *CommentService) List(ctx context.Context, q *query.ListQuery) ([]*models.Comment, int, error) {
	comments, total, err := s.comments.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if err := attachAuthors(ctx, s.users, comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Get returns one comment with its author attached.
func (s *CommentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}

	if err := attachAuthors(ctx, s.users, []*models.Comment{comment}); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListByVideo returns every comment on an existing video.
func (s *CommentService) ListByVideo(ctx context.Context, videoID string) ([]*models.Comment, error) {
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
	if err := attachAuthors(ctx, s.users, comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// Create persists the comment under the given video; the embedded author is
// persisted as a user row first.
func (s *CommentService) Create(ctx context.Context, videoID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	comment, err := s.cascade.CreateComment(ctx, videoID, req)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.events, "comment", "created", comment.ID)
	return comment, nil
}

// Update applies the non-nil fields of the payload. The id and the author
// are never modified.
func (s *CommentService) Update(ctx context.Context, id string, req *models.UpdateCommentRequest) error {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("comment", id)
		}
		return err
	}

	comment.Apply(req)
	return s.comments.Save(ctx, comment)
}

// Delete removes the comment together with its author user.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.cascade.DeleteComment(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.events, "comment", "deleted", id)
	return nil
}
