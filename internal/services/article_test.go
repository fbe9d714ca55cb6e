package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticle(t *testing.T) {
	st := newTestStore(t)
	createUser(t, st, "u1", "alice")
	svc := NewArticleService(st, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local) }
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateArticleInput{
		UserID:   "u1",
		Title:    " Hello ",
		Classify: "Go",
		Content:  "text ![a](https://img/a.png) ![b](https://img/b.png)",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.ID, "A"))
	assert.Equal(t, "Hello", a.Title)
	assert.Equal(t, "2024.05.01 09:30", a.CreateTime)
	assert.Equal(t, "alice", a.Author.AuthorName)
	assert.Equal(t, []string{"https://img/a.png", "https://img/b.png"}, a.Cover)

	stored, err := st.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.BrowseCount)
	assert.Zero(t, stored.ThumbsUpCount)
	assert.Empty(t, stored.Comments)
}

func TestCreateArticleErrors(t *testing.T) {
	st := newTestStore(t)
	svc := NewArticleService(st, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateArticleInput{UserID: "u1", Classify: "Go"})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = svc.Create(ctx, CreateArticleInput{UserID: "ghost", Title: "t", Classify: "Go"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLabels(t *testing.T) {
	st := newTestStore(t)
	svc := NewLabelService(st, nil, time.Minute)
	ctx := context.Background()

	seeded, err := svc.SeedLabels(ctx, "All")
	require.NoError(t, err)
	assert.True(t, seeded)
	seeded, err = svc.SeedLabels(ctx, "All")
	require.NoError(t, err)
	assert.False(t, seeded)

	labels, err := svc.Labels(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, labels)
	assert.Equal(t, "All", labels[0].Name)
}
