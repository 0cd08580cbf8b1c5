package service

import (
	"context"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/repository"
)

// CaptionService orchestrates caption operations.
type CaptionService struct {
	captions repository.CaptionRepository
	videos   repository.VideoRepository
	cascade  *Cascade
	events   EventPublisher
}

// NewCaptionService creates a new CaptionService. events may be nil.
func NewCaptionService(
	captions repository.CaptionRepository,
	videos repository.VideoRepository,
	cascade *Cascade,
	events EventPublisher,
) *CaptionService {
	return &CaptionService{
		captions: captions,
		videos:   videos,
		cascade:  cascade,
		events:   events,
	}
}

// List returns one page of captions.
func (s *CaptionService) List(ctx context.Context, q *query.ListQuery) ([]*models.Caption, int, error) {
	return s.captions.List(ctx, q)
}

// Get returns one caption.
func (s *CaptionService) Get(ctx context.Context, id string) (*models.Caption, error) {
	caption, err := s.captions.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("caption", id)
		}
		return nil, err
	}
	return caption, nil
}

// ListByVideo returns every caption of an existing video.
func (s *CaptionService) ListByVideo(ctx context.Context, videoID string) ([]*models.Caption, error) {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("video", videoID)
	}

	captions, err := s.captions.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if captions == nil {
		captions = []*models.Caption{}
	}
	return captions, nil
}

// Create persists the caption under the given video.
func (s *CaptionService) Create(ctx context.Context, videoID string, req *models.CreateCaptionRequest) (*models.Caption, error) {
	caption, err := s.cascade.CreateCaption(ctx, videoID, req)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.events, "caption", "created", caption.ID)
	return caption, nil
}

// Update applies the non-nil fields of the payload. The id is never modified.
func (s *CaptionService) Update(ctx context.Context, id string, req *models.UpdateCaptionRequest) error {
	caption, err := s.captions.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("caption", id)
		}
		return err
	}

	caption.Apply(req)
	return s.captions.Save(ctx, caption)
}

// Delete removes the caption.
func (s *CaptionService) Delete(ctx context.Context, id string) error {
	if err := s.cascade.DeleteCaption(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.events, "caption", "deleted", id)
	return nil
}
