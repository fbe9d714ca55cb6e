package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveThumbsUpCountsOnce(t *testing.T) {
	st := newTestStore(t)
	createUser(t, st, "u1", "alice")
	createArticle(t, st, "A1", "Go", "u9", time.Now())
	svc := NewThumbsService(st, nil)
	ctx := context.Background()

	res, err := svc.Give(ctx, "u1", "A1")
	require.NoError(t, err)
	assert.False(t, res.Already)

	res, err = svc.Give(ctx, "u1", "A1")
	require.NoError(t, err)
	assert.True(t, res.Already)

	a, err := st.GetArticle(ctx, "A1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.ThumbsUpCount)

	u, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, u.ThumbsUpArticles)
}

func TestGiveThumbsUpDistinctUsers(t *testing.T) {
	st := newTestStore(t)
	createArticle(t, st, "A1", "Go", "u9", time.Now())
	svc := NewThumbsService(st, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("u%d", i)
		createUser(t, st, id, id)
		_, err := svc.Give(ctx, id, "A1")
		require.NoError(t, err)
	}
	a, err := st.GetArticle(ctx, "A1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, a.ThumbsUpCount)
}

func TestGiveThumbsUpConcurrentSameUser(t *testing.T) {
	st := newTestStore(t)
	createUser(t, st, "u1", "alice")
	createArticle(t, st, "A1", "Go", "u9", time.Now())
	svc := NewThumbsService(st, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Give(ctx, "u1", "A1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	a, err := st.GetArticle(ctx, "A1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.ThumbsUpCount)
}

func TestGiveThumbsUpNotFound(t *testing.T) {
	st := newTestStore(t)
	createUser(t, st, "u1", "alice")
	svc := NewThumbsService(st, nil)
	ctx := context.Background()

	_, err := svc.Give(ctx, "u1", "A404")
	assert.ErrorIs(t, err, ErrArticleNotFound)

	u, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.ThumbsUpArticles, "a missing article must not be claimed")

	_, err = svc.Give(ctx, "ghost", "A404")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
