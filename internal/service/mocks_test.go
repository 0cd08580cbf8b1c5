package service

import (
	"context"
	"sort"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/pkg/logger"
)

func init() {
	_ = logger.Init("error", "")
}

// Map-backed repositories. List ignores the query beyond paging; the SQL
// rendering is covered by the query package and the integration tests.

type mockChannelRepo struct {
	channels map[string]*models.Channel
}

func newMockChannelRepo() *mockChannelRepo {
	return &mockChannelRepo{channels: make(map[string]*models.Channel)}
}

func (m *mockChannelRepo) Get(_ context.Context, id string) (*models.Channel, error) {
	channel, ok := m.channels[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *channel
	return &clone, nil
}

func (m *mockChannelRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.channels[id]
	return ok, nil
}

func (m *mockChannelRepo) Save(_ context.Context, channel *models.Channel) error {
	clone := *channel
	m.channels[channel.ID] = &clone
	return nil
}

func (m *mockChannelRepo) SaveAll(ctx context.Context, channels []*models.Channel) error {
	for _, channel := range channels {
		if err := m.Save(ctx, channel); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockChannelRepo) Delete(_ context.Context, id string) error {
	delete(m.channels, id)
	return nil
}

func (m *mockChannelRepo) List(_ context.Context, q *query.ListQuery) ([]*models.Channel, int, error) {
	ids := make([]string, 0, len(m.channels))
	for id := range m.channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*models.Channel, 0, len(ids))
	for _, id := range ids {
		clone := *m.channels[id]
		all = append(all, &clone)
	}
	return page(all, q), len(all), nil
}

type mockVideoRepo struct {
	videos map[string]*models.Video
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{videos: make(map[string]*models.Video)}
}

func (m *mockVideoRepo) Get(_ context.Context, id string) (*models.Video, error) {
	video, ok := m.videos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *video
	return &clone, nil
}

func (m *mockVideoRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.videos[id]
	return ok, nil
}

func (m *mockVideoRepo) Save(_ context.Context, video *models.Video) error {
	clone := *video
	m.videos[video.ID] = &clone
	return nil
}

func (m *mockVideoRepo) SaveAll(ctx context.Context, videos []*models.Video) error {
	for _, video := range videos {
		if err := m.Save(ctx, video); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockVideoRepo) Delete(_ context.Context, id string) error {
	delete(m.videos, id)
	return nil
}

func (m *mockVideoRepo) List(_ context.Context, q *query.ListQuery) ([]*models.Video, int, error) {
	all := m.sorted()
	return page(all, q), len(all), nil
}

func (m *mockVideoRepo) ListByChannel(_ context.Context, channelID string) ([]*models.Video, error) {
	var videos []*models.Video
	for _, video := range m.sorted() {
		if video.ChannelID == channelID {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (m *mockVideoRepo) sorted() []*models.Video {
	ids := make([]string, 0, len(m.videos))
	for id := range m.videos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*models.Video, 0, len(ids))
	for _, id := range ids {
		clone := *m.videos[id]
		all = append(all, &clone)
	}
	return all
}

type mockCommentRepo struct {
	comments map[string]*models.Comment
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*models.Comment)}
}

func (m *mockCommentRepo) Get(_ context.Context, id string) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *comment
	return &clone, nil
}

func (m *mockCommentRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.comments[id]
	return ok, nil
}

func (m *mockCommentRepo) Save(_ context.Context, comment *models.Comment) error {
	clone := *comment
	clone.Author = nil
	m.comments[comment.ID] = &clone
	return nil
}

func (m *mockCommentRepo) SaveAll(ctx context.Context, comments []*models.Comment) error {
	for _, comment := range comments {
		if err := m.Save(ctx, comment); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepo) List(_ context.Context, q *query.ListQuery) ([]*models.Comment, int, error) {
	all := m.sorted()
	return page(all, q), len(all), nil
}

func (m *mockCommentRepo) ListByVideo(_ context.Context, videoID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.sorted() {
		if comment.VideoID == videoID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *mockCommentRepo) FindByAuthor(_ context.Context, userID int64) (*models.Comment, error) {
	for _, comment := range m.sorted() {
		if comment.AuthorID == userID {
			return comment, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockCommentRepo) sorted() []*models.Comment {
	ids := make([]string, 0, len(m.comments))
	for id := range m.comments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		clone := *m.comments[id]
		all = append(all, &clone)
	}
	return all
}

type mockCaptionRepo struct {
	captions map[string]*models.Caption
}

func newMockCaptionRepo() *mockCaptionRepo {
	return &mockCaptionRepo{captions: make(map[string]*models.Caption)}
}

func (m *mockCaptionRepo) Get(_ context.Context, id string) (*models.Caption, error) {
	caption, ok := m.captions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *caption
	return &clone, nil
}

func (m *mockCaptionRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.captions[id]
	return ok, nil
}

func (m *mockCaptionRepo) Save(_ context.Context, caption *models.Caption) error {
	clone := *caption
	m.captions[caption.ID] = &clone
	return nil
}

func (m *mockCaptionRepo) SaveAll(ctx context.Context, captions []*models.Caption) error {
	for _, caption := range captions {
		if err := m.Save(ctx, caption); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCaptionRepo) Delete(_ context.Context, id string) error {
	delete(m.captions, id)
	return nil
}

func (m *mockCaptionRepo) List(_ context.Context, q *query.ListQuery) ([]*models.Caption, int, error) {
	all := m.sorted()
	return page(all, q), len(all), nil
}

func (m *mockCaptionRepo) ListByVideo(_ context.Context, videoID string) ([]*models.Caption, error) {
	var captions []*models.Caption
	for _, caption := range m.sorted() {
		if caption.VideoID == videoID {
			captions = append(captions, caption)
		}
	}
	return captions, nil
}

func (m *mockCaptionRepo) sorted() []*models.Caption {
	ids := make([]string, 0, len(m.captions))
	for id := range m.captions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*models.Caption, 0, len(ids))
	for _, id := range ids {
		clone := *m.captions[id]
		all = append(all, &clone)
	}
	return all
}

type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepo) Save(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) SaveAll(ctx context.Context, users []*models.User) error {
	for _, user := range users {
		if err := m.Save(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, q *query.ListQuery) ([]*models.User, int, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	all := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		clone := *m.users[id]
		all = append(all, &clone)
	}
	return page(all, q), len(all), nil
}

type mockTokenRepo struct {
	tokens map[string]bool
}

func newMockTokenRepo(values ...string) *mockTokenRepo {
	m := &mockTokenRepo{tokens: make(map[string]bool)}
	for _, value := range values {
		m.tokens[value] = true
	}
	return m
}

func (m *mockTokenRepo) Exists(_ context.Context, value string) (bool, error) {
	return m.tokens[value], nil
}

func (m *mockTokenRepo) Save(_ context.Context, token *models.Token) error {
	m.tokens[token.Value] = true
	return nil
}

func page[T any](all []*T, q *query.ListQuery) []*T {
	start := q.Offset()
	if start >= len(all) {
		return []*T{}
	}
	end := start + q.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// fixture builds a cascade plus services over fresh mock repositories.
type fixture struct {
	channels *mockChannelRepo
	videos   *mockVideoRepo
	comments *mockCommentRepo
	captions *mockCaptionRepo
	users    *mockUserRepo
	cascade  *Cascade
}

func newFixture() *fixture {
	f := &fixture{
		channels: newMockChannelRepo(),
		videos:   newMockVideoRepo(),
		comments: newMockCommentRepo(),
		captions: newMockCaptionRepo(),
		users:    newMockUserRepo(),
	}
	f.cascade = NewCascade(f.channels, f.videos, f.comments, f.captions, f.users)
	return f
}

func strPtr(s string) *string { return &s }
