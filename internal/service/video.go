package service

import (
	"context"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/repository"
)

// VideoService orchestrates video operations.
type VideoService struct {
	videos   repository.VideoRepository
	comments repository.CommentRepository
	captions repository.CaptionRepository
	users    repository.UserRepository
	cascade  *Cascade
	events   EventPublisher
}

// NewVideoService creates a new VideoService. events may be nil.
func NewVideoService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	captions repository.CaptionRepository,
	users repository.UserRepository,
	cascade *Cascade,
	events EventPublisher,
) *VideoService {
	return &VideoService{
		videos:   videos,
		comments: comments,
		captions: captions,
		users:    users,
		cascade:  cascade,
		events:   events,
	}
}

// List returns one page of videos, without hydrated collections.
func (s *VideoService) List(ctx context.Context, q *query.ListQuery) ([]*models.Video, int, error) {
	videos, total, err := s.videos.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for _, video := range videos {
		video.Comments = []*models.Comment{}
		video.Captions = []*models.Caption{}
	}
	return videos, total, nil
}

// Get returns one video with its comments (authors attached) and captions.
func (s *VideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("video", id)
		}
		return nil, err
	}

	comments, err := s.comments.ListByVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := attachAuthors(ctx, s.users, comments); err != nil {
		return nil, err
	}
	video.Comments = comments
	if video.Comments == nil {
		video.Comments = []*models.Comment{}
	}

	captions, err := s.captions.ListByVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	video.Captions = captions
	if video.Captions == nil {
		video.Captions = []*models.Caption{}
	}

	return video, nil
}

// Create persists the video under the given channel, with any embedded
// comments and captions.
func (s *VideoService) Create(ctx context.Context, channelID string, req *models.CreateVideoRequest) (*models.Video, error) {
	video, err := s.cascade.CreateVideo(ctx, channelID, req)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.events, "video", "created", video.ID)
	return video, nil
}

// Update applies the non-nil fields of the payload. Id, releaseTime and the
// owned collections are never modified.
func (s *VideoService) Update(ctx context.Context, id string, req *models.UpdateVideoRequest) error {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("video", id)
		}
		return err
	}

	video.Apply(req)
	return s.videos.Save(ctx, video)
}

// Delete removes the video and cascades through comments, captions and
// comment authors.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	if err := s.cascade.DeleteVideo(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.events, "video", "deleted", id)
	return nil
}

// attachAuthors resolves the author user for each comment.
func attachAuthors(ctx context.Context, users repository.UserRepository, comments []*models.Comment) error {
	for _, comment := range comments {
		author, err := users.Get(ctx, comment.AuthorID)
		if err != nil {
			if db.IsNotFound(err) {
				continue
			}
			return err
		}
		comment.Author = author
	}
	return nil
}
