package sqlstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"feedthread/internal/models"
	"feedthread/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func seedUser(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, s.CreateUser(context.Background(), &models.User{ID: id, AuthorName: "name-" + id}))
}

func seedArticle(t *testing.T, s *Store, id, classify string, at time.Time) {
	t.Helper()
	require.NoError(t, s.CreateArticle(context.Background(), &models.Article{
		ID:        id,
		Title:     "title " + id,
		Classify:  classify,
		Content:   "body of " + id,
		CreatedAt: at,
	}))
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetArticle(ctx, "A0")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.ListComments(ctx, "A0")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserStoresEmptySets(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "u1")

	u, err := s.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, u.ArticleLikes)
	assert.Equal(t, []string{}, u.AuthorLikes)
	assert.Equal(t, []string{}, u.ThumbsUpArticles)
}

func TestToggleMember(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	members, active, err := s.ToggleMember(ctx, "u1", models.SetArticleLikes, "A1")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, []string{"A1"}, members)

	members, active, err = s.ToggleMember(ctx, "u1", models.SetArticleLikes, "A1")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Empty(t, members)

	_, _, err = s.ToggleMember(ctx, "u2", models.SetArticleLikes, "A1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleMemberConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := s.ToggleMember(ctx, "u1", models.SetAuthorLikes, fmt.Sprintf("author-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, u.AuthorLikes, 10, "no toggle may be lost")
}

func TestAddMemberIfAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	added, err := s.AddMemberIfAbsent(ctx, "u1", models.SetThumbsUp, "A1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddMemberIfAbsent(ctx, "u1", models.SetThumbsUp, "A1")
	require.NoError(t, err)
	assert.False(t, added)

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, u.ThumbsUpArticles)
}

func TestListArticlesPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		classify := "Go"
		if i%2 == 1 {
			classify = "Rust"
		}
		seedArticle(t, s, fmt.Sprintf("A%02d", i), classify, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := s.ListArticles(ctx, store.ArticleQuery{All: true, Skip: 0, Limit: 6, OmitContent: true})
	require.NoError(t, err)
	second, err := s.ListArticles(ctx, store.ArticleQuery{All: true, Skip: 6, Limit: 6, OmitContent: true})
	require.NoError(t, err)

	require.Len(t, first, 6)
	require.Len(t, second, 4)
	assert.Equal(t, "A00", first[0].ID)
	assert.Equal(t, "A06", second[0].ID)
	assert.Empty(t, first[0].Content)

	rust, err := s.ListArticles(ctx, store.ArticleQuery{Classify: "Rust", Limit: 6})
	require.NoError(t, err)
	assert.Len(t, rust, 5)
	for _, a := range rust {
		assert.Equal(t, "Rust", a.Classify)
	}
	assert.Equal(t, "body of A01", rust[0].Content)
}

func TestApplyCommentPatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedArticle(t, s, "A1", "Go", time.Now())

	c1 := models.Comment{Node: models.Node{CommentID: "c1", Content: "first"}, Replys: []models.Reply{}}
	c2 := models.Comment{Node: models.Node{CommentID: "c2", Content: "second"}, Replys: []models.Reply{}}
	require.NoError(t, s.Apply(ctx, store.PushComment("A1", c1)))
	require.NoError(t, s.Apply(ctx, store.PushComment("A1", c2)))

	r := models.Reply{Node: models.Node{CommentID: "r1", IsReply: true}, To: "x"}
	require.NoError(t, s.Apply(ctx, store.PushReply("A1", 1, "c1", r)))

	comments, err := s.ListComments(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c2", comments[0].CommentID)
	assert.Empty(t, comments[0].Replys)
	require.Len(t, comments[1].Replys, 1)
	assert.Equal(t, "r1", comments[1].Replys[0].CommentID)

	// 索引 0 现在是 c2，守卫失败
	err = s.Apply(ctx, store.PushReply("A1", 0, "c1", r))
	assert.ErrorIs(t, err, store.ErrConflict)

	err = s.Apply(ctx, store.PushComment("A404", c1))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyInc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedArticle(t, s, "A1", "Go", time.Now())

	require.NoError(t, s.Apply(ctx, store.Inc(store.Articles, "A1", "thumbs_up_count", 1)))
	require.NoError(t, s.Apply(ctx, store.Inc(store.Articles, "A1", "browse_count", 2)))

	a, err := s.GetArticle(ctx, "A1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.ThumbsUpCount)
	assert.EqualValues(t, 2, a.BrowseCount)

	err = s.Apply(ctx, store.Inc(store.Articles, "A404", "browse_count", 1))
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = s.Apply(ctx, store.Inc(store.Articles, "A1", "title", 1))
	assert.Error(t, err)
}

func TestSaveLabelsUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLabels(ctx, []models.Label{{ID: "all", Name: "All"}, {ID: "go", Name: "Go", Sort: 1}}))
	require.NoError(t, s.SaveLabels(ctx, []models.Label{{ID: "go", Name: "Golang", Sort: 1}}))

	labels, err := s.ListLabels(ctx)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "All", labels[0].Name)
	assert.Equal(t, "Golang", labels[1].Name)
}
