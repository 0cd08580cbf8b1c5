//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/db/testutil"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
)

func listQuery(t *testing.T, page, size int, order string, filters map[string]string, fields query.FieldSet) *query.ListQuery {
	t.Helper()
	q, err := query.Parse(page, size, order, filters, fields)
	require.NoError(t, err)
	return q
}

func TestChannelRepository(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewChannelRepository(td.Pool)
	ctx := context.Background()

	channel := &models.Channel{
		ID:          "ch-1",
		Name:        "gophers",
		Description: "all things go",
		CreatedTime: "2021-03-01T10:00:00",
	}
	require.NoError(t, repo.Save(ctx, channel))

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, "ch-1")
		require.NoError(t, err)
		require.Equal(t, "gophers", got.Name)
		require.Equal(t, "2021-03-01T10:00:00", got.CreatedTime)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		require.True(t, db.IsNotFound(err))
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, "ch-1")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.Exists(ctx, "nope")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("save is an upsert that keeps created_time", func(t *testing.T) {
		update := &models.Channel{
			ID:          "ch-1",
			Name:        "renamed",
			Description: "still go",
			CreatedTime: "2029-01-01T00:00:00",
		}
		require.NoError(t, repo.Save(ctx, update))

		got, err := repo.Get(ctx, "ch-1")
		require.NoError(t, err)
		require.Equal(t, "renamed", got.Name)
		require.Equal(t, "2021-03-01T10:00:00", got.CreatedTime)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "ch-1"))
		_, err := repo.Get(ctx, "ch-1")
		require.True(t, db.IsNotFound(err))

		// Deleting an absent row is a no-op at this layer.
		require.NoError(t, repo.Delete(ctx, "ch-1"))
	})
}

func TestChannelListFilteringAndOrdering(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewChannelRepository(td.Pool)
	ctx := context.Background()

	seed := []*models.Channel{
		{ID: "ch-1", Name: "alpha cats", CreatedTime: "2020-01-01"},
		{ID: "ch-2", Name: "beta dogs", CreatedTime: "2021-06-15"},
		{ID: "ch-3", Name: "gamma cats", CreatedTime: "2021-09-30"},
	}
	require.NoError(t, repo.SaveAll(ctx, seed))

	t.Run("contains filter on name", func(t *testing.T) {
		q := listQuery(t, 0, 10, "", map[string]string{"name": "cats"}, query.ChannelFields)
		channels, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, channels, 2)
	})

	t.Run("contains filter on created time", func(t *testing.T) {
		q := listQuery(t, 0, 10, "", map[string]string{"createdTime": "2021"}, query.ChannelFields)
		_, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 2, total)
	})

	t.Run("exact filter on id", func(t *testing.T) {
		q := listQuery(t, 0, 10, "", map[string]string{"id": "ch-2"}, query.ChannelFields)
		channels, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "beta dogs", channels[0].Name)
	})

	t.Run("descending order", func(t *testing.T) {
		q := listQuery(t, 0, 10, "-name", nil, query.ChannelFields)
		channels, _, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, "gamma cats", channels[0].Name)
	})

	t.Run("paging", func(t *testing.T) {
		q := listQuery(t, 1, 2, "", nil, query.ChannelFields)
		channels, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, channels, 1)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		q := listQuery(t, 9, 10, "", nil, query.ChannelFields)
		channels, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Empty(t, channels)
	})
}

func TestVideoRepository(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	channels := NewChannelRepository(td.Pool)
	videos := NewVideoRepository(td.Pool)
	ctx := context.Background()

	require.NoError(t, channels.Save(ctx, &models.Channel{ID: "ch-1", Name: "gophers"}))

	t.Run("orphan video is a foreign key violation", func(t *testing.T) {
		err := videos.Save(ctx, &models.Video{ID: "v-x", ChannelID: "nope", Name: "orphan"})
		require.True(t, db.IsForeignKeyViolation(err))
	})

	require.NoError(t, videos.Save(ctx, &models.Video{ID: "v-1", ChannelID: "ch-1", Name: "intro", ReleaseTime: "2021-03-02"}))
	require.NoError(t, videos.Save(ctx, &models.Video{ID: "v-2", ChannelID: "ch-1", Name: "generics"}))

	t.Run("list by channel", func(t *testing.T) {
		got, err := videos.ListByChannel(ctx, "ch-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("upsert keeps release_time", func(t *testing.T) {
		require.NoError(t, videos.Save(ctx, &models.Video{ID: "v-1", ChannelID: "ch-1", Name: "intro v2", ReleaseTime: "2030-01-01"}))
		got, err := videos.Get(ctx, "v-1")
		require.NoError(t, err)
		require.Equal(t, "intro v2", got.Name)
		require.Equal(t, "2021-03-02", got.ReleaseTime)
	})
}

func TestCommentAndUserRepositories(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	channels := NewChannelRepository(td.Pool)
	videos := NewVideoRepository(td.Pool)
	comments := NewCommentRepository(td.Pool)
	users := NewUserRepository(td.Pool)
	ctx := context.Background()

	require.NoError(t, channels.Save(ctx, &models.Channel{ID: "ch-1", Name: "gophers"}))
	require.NoError(t, videos.Save(ctx, &models.Video{ID: "v-1", ChannelID: "ch-1", Name: "intro"}))

	author := &models.User{Name: "ana", UserLink: "https://example.com/ana"}
	require.NoError(t, users.Save(ctx, author))
	require.NotZero(t, author.ID, "store must assign the user id")

	comment := &models.Comment{
		ID:        "c-1",
		VideoID:   "v-1",
		Text:      "nice",
		CreatedOn: "2021-03-03",
		AuthorID:  author.ID,
	}
	require.NoError(t, comments.Save(ctx, comment))

	t.Run("find by author", func(t *testing.T) {
		got, err := comments.FindByAuthor(ctx, author.ID)
		require.NoError(t, err)
		require.Equal(t, "c-1", got.ID)

		_, err = comments.FindByAuthor(ctx, author.ID+100)
		require.True(t, db.IsNotFound(err))
	})

	t.Run("user update keeps the id", func(t *testing.T) {
		author.Name = "ana maria"
		require.NoError(t, users.Save(ctx, author))

		got, err := users.Get(ctx, author.ID)
		require.NoError(t, err)
		require.Equal(t, "ana maria", got.Name)
	})

	t.Run("numeric filter on user id", func(t *testing.T) {
		q := listQuery(t, 0, 10, "", map[string]string{"id": "1"}, query.UserFields)
		got, total, err := users.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, int64(1), got[0].ID)
	})

	t.Run("deleting a referenced user is a foreign key violation", func(t *testing.T) {
		err := users.Delete(ctx, author.ID)
		require.True(t, db.IsForeignKeyViolation(err))
	})
}

func TestCaptionRepository(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	channels := NewChannelRepository(td.Pool)
	videos := NewVideoRepository(td.Pool)
	captions := NewCaptionRepository(td.Pool)
	ctx := context.Background()

	require.NoError(t, channels.Save(ctx, &models.Channel{ID: "ch-1", Name: "gophers"}))
	require.NoError(t, videos.Save(ctx, &models.Video{ID: "v-1", ChannelID: "ch-1", Name: "intro"}))

	require.NoError(t, captions.SaveAll(ctx, []*models.Caption{
		{ID: "cap-1", VideoID: "v-1", Name: "english", Language: "en"},
		{ID: "cap-2", VideoID: "v-1", Name: "spanish", Language: "es"},
	}))

	t.Run("exact filter on language", func(t *testing.T) {
		q := listQuery(t, 0, 10, "", map[string]string{"language": "en"}, query.CaptionFields)
		got, total, err := captions.List(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "english", got[0].Name)
	})

	t.Run("list by video", func(t *testing.T) {
		got, err := captions.ListByVideo(ctx, "v-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})
}

func TestTokenRepository(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	tokens := NewTokenRepository(td.Pool)
	ctx := context.Background()

	ok, err := tokens.Exists(ctx, "secret")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tokens.Save(ctx, &models.Token{Value: "secret"}))

	ok, err = tokens.Exists(ctx, "secret")
	require.NoError(t, err)
	require.True(t, ok)

	// Registering the same value twice is a no-op.
	require.NoError(t, tokens.Save(ctx, &models.Token{Value: "secret"}))
}
