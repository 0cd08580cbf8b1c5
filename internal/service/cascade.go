package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/repository"
	"github.com/videominer/videominer-go/pkg/logger"
)

// Cascade propagates creates and deletes through the ownership graph:
// channel -> video -> {comment, caption}, comment -> author user.
//
// On create the parent is persisted before its children so a child row never
// references a missing parent. On delete the subtree is removed leaves first
// for the same reason; the root's existence is checked before anything is
// touched, and failures below the root are best-effort (logged, never
// surfaced) so a partially deleted subtree can be deleted again.
type Cascade struct {
	channels repository.ChannelRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	captions repository.CaptionRepository
	users    repository.UserRepository
}

// NewCascade creates a new Cascade over the given repositories.
func NewCascade(
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	captions repository.CaptionRepository,
	users repository.UserRepository,
) *Cascade {
	return &Cascade{
		channels: channels,
		videos:   videos,
		comments: comments,
		captions: captions,
		users:    users,
	}
}

// CreateChannel persists a channel and every embedded video subtree.
func (c *Cascade) CreateChannel(ctx context.Context, req *models.CreateChannelRequest) (*models.Channel, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	channel := &models.Channel{
		ID:          *req.ID,
		Name:        req.Name,
		Description: req.Description,
		CreatedTime: req.CreatedTime,
		Videos:      []*models.Video{},
	}

	if err := c.channels.Save(ctx, channel); err != nil {
		return nil, err
	}

	for i := range req.Videos {
		video, err := c.createVideoTree(ctx, channel.ID, &req.Videos[i])
		if err != nil {
			return nil, err
		}
		channel.Videos = append(channel.Videos, video)
	}

	return channel, nil
}

// CreateVideo persists a video under an existing channel, with any embedded
// comments and captions. The id check comes before the parent check.
func (c *Cascade) CreateVideo(ctx context.Context, channelID string, req *models.CreateVideoRequest) (*models.Video, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	exists, err := c.channels.Exists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("channel", channelID)
	}

	return c.createVideoTree(ctx, channelID, req)
}

func (c *Cascade) createVideoTree(ctx context.Context, channelID string, req *models.CreateVideoRequest) (*models.Video, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	video := &models.Video{
		ID:          *req.ID,
		ChannelID:   channelID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseTime: req.ReleaseTime,
		Comments:    []*models.Comment{},
		Captions:    []*models.Caption{},
	}

	if err := c.videos.Save(ctx, video); err != nil {
		return nil, err
	}

	for i := range req.Comments {
		comment, err := c.createComment(ctx, video.ID, &req.Comments[i])
		if err != nil {
			return nil, err
		}
		video.Comments = append(video.Comments, comment)
	}

	for i := range req.Captions {
		caption, err := c.createCaption(ctx, video.ID, &req.Captions[i])
		if err != nil {
			return nil, err
		}
		video.Captions = append(video.Captions, caption)
	}

	return video, nil
}

// CreateComment persists a comment under an existing video. The embedded
// author becomes a first-class user row before the comment references it;
// this is the only path that creates users.
func (c *Cascade) CreateComment(ctx context.Context, videoID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	exists, err := c.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("video", videoID)
	}

	return c.createComment(ctx, videoID, req)
}

func (c *Cascade) createComment(ctx context.Context, videoID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	author := &models.User{
		Name:        req.Author.Name,
		UserLink:    req.Author.UserLink,
		PictureLink: req.Author.PictureLink,
	}
	if err := c.users.Save(ctx, author); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        *req.ID,
		VideoID:   videoID,
		Text:      req.Text,
		CreatedOn: req.CreatedOn,
		AuthorID:  author.ID,
		Author:    author,
	}
	if err := c.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// CreateCaption persists a caption under an existing video.
func (c *Cascade) CreateCaption(ctx context.Context, videoID string, req *models.CreateCaptionRequest) (*models.Caption, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	exists, err := c.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("video", videoID)
	}

	return c.createCaption(ctx, videoID, req)
}

func (c *Cascade) createCaption(ctx context.Context, videoID string, req *models.CreateCaptionRequest) (*models.Caption, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}

	caption := &models.Caption{
		ID:       *req.ID,
		VideoID:  videoID,
		Name:     req.Name,
		Language: req.Language,
	}
	if err := c.captions.Save(ctx, caption); err != nil {
		return nil, err
	}

	return caption, nil
}

// DeleteChannel removes a channel and its whole subtree. A missing channel
// is an error before any row is touched.
func (c *Cascade) DeleteChannel(ctx context.Context, id string) error {
	exists, err := c.channels.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("channel", id)
	}

	videos, err := c.videos.ListByChannel(ctx, id)
	if err != nil {
		return err
	}
	for _, video := range videos {
		if err := c.deleteVideoTree(ctx, video.ID); err != nil {
			logger.Log.Warn("cascade: video subtree not fully deleted",
				zap.String("channelId", id),
				zap.String("videoId", video.ID),
				zap.Error(err),
			)
		}
	}

	return c.channels.Delete(ctx, id)
}

// DeleteVideo removes a video and its comments, captions and comment authors.
func (c *Cascade) DeleteVideo(ctx context.Context, id string) error {
	exists, err := c.videos.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("video", id)
	}

	return c.deleteVideoTree(ctx, id)
}

func (c *Cascade) deleteVideoTree(ctx context.Context, id string) error {
	comments, err := c.comments.ListByVideo(ctx, id)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		c.deleteCommentAndAuthor(ctx, comment)
	}

	captions, err := c.captions.ListByVideo(ctx, id)
	if err != nil {
		return err
	}
	for _, caption := range captions {
		if err := c.captions.Delete(ctx, caption.ID); err != nil {
			logger.Log.Warn("cascade: caption not deleted",
				zap.String("captionId", caption.ID),
				zap.Error(err),
			)
		}
	}

	return c.videos.Delete(ctx, id)
}

// DeleteComment removes a comment and its author user. One user writes at
// most one comment, so removing the author cannot orphan another comment.
func (c *Cascade) DeleteComment(ctx context.Context, id string) error {
	comment, err := c.comments.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return notFound("comment", id)
		}
		return err
	}

	if err := c.comments.Delete(ctx, id); err != nil {
		return err
	}
	if err := c.users.Delete(ctx, comment.AuthorID); err != nil {
		logger.Log.Warn("cascade: comment author not deleted",
			zap.String("commentId", id),
			zap.Int64("userId", comment.AuthorID),
			zap.Error(err),
		)
	}

	return nil
}

// DeleteCaption removes a single caption.
func (c *Cascade) DeleteCaption(ctx context.Context, id string) error {
	exists, err := c.captions.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("caption", id)
	}

	return c.captions.Delete(ctx, id)
}

// DeleteUser removes a user through its comment: the comment is deleted
// first and takes the author row with it. A user that never wrote a comment
// is deleted directly.
func (c *Cascade) DeleteUser(ctx context.Context, id int64, key string) error {
	exists, err := c.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("user", key)
	}

	comment, err := c.comments.FindByAuthor(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return c.users.Delete(ctx, id)
		}
		return err
	}

	if err := c.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}
	return c.users.Delete(ctx, id)
}

func (c *Cascade) deleteCommentAndAuthor(ctx context.Context, comment *models.Comment) {
	if err := c.comments.Delete(ctx, comment.ID); err != nil {
		logger.Log.Warn("cascade: comment not deleted",
			zap.String("commentId", comment.ID),
			zap.Error(err),
		)
		return
	}
	if err := c.users.Delete(ctx, comment.AuthorID); err != nil {
		logger.Log.Warn("cascade: comment author not deleted",
			zap.String("commentId", comment.ID),
			zap.Int64("userId", comment.AuthorID),
			zap.Error(err),
		)
	}
}
