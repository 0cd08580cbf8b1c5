package service

import (
	"context"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/repository"
)

// ChannelService orchestrates channel operations.
type ChannelService struct {
	channels repository.ChannelRepository
	videos   repository.VideoRepository
	cascade  *Cascade
	events   EventPublisher
}

// NewChannelService creates a new ChannelService. events may be nil.
func NewChannelService(
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	cascade *Cascade,
	events EventPublisher,
) *ChannelService {
	return &ChannelService{
		channels: channels,
		videos:   videos,
		cascade:  cascade,
		events:   events,
	}
}

// List returns one page of channels, without hydrated video collections.
func (s *ChannelService) List(ctx context.Context, q *query.ListQuery) ([]*models.Channel, int, error) {
	channels, total, err := s.channels.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for _, channel := range channels {
		channel.Videos = []*models.Video{}
	}
	return channels, total, nil
}

// Get returns one channel with its owned videos attached.
func (s *ChannelService) Get(ctx context.Context, id string) (*models.Channel, error) {
	channel, err := s.channels.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("channel", id)
		}
		return nil, err
	}

	videos, err := s.videos.ListByChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	channel.Videos = videos
	if channel.Videos == nil {
		channel.Videos = []*models.Video{}
	}

	return channel, nil
}

// Create persists the channel and its embedded subtree.
func (s *ChannelService) Create(ctx context.Context, req *models.CreateChannelRequest) (*models.Channel, error) {
	channel, err := s.cascade.CreateChannel(ctx, req)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.events, "channel", "created", channel.ID)
	return channel, nil
}

// Update applies the non-nil fields of the payload. Id, createdTime and the
// video collection are never modified.
func (s *ChannelService) Update(ctx context.Context, id string, req *models.UpdateChannelRequest) error {
	channel, err := s.channels.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("channel", id)
		}
		return err
	}

	channel.Apply(req)
	return s.channels.Save(ctx, channel)
}

// Delete removes the channel and cascades through its subtree.
func (s *ChannelService) Delete(ctx context.Context, id string) error {
	if err := s.cascade.DeleteChannel(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.events, "channel", "deleted", id)
	return nil
}
