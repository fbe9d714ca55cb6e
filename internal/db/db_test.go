package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"feedthread/internal/config"
	"feedthread/internal/services"
	"feedthread/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndSeed(t *testing.T) {
	cfg := &config.Config{StoreDriver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "test.db")}
	ctx := context.Background()

	st, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer st.Close(ctx)

	labels := services.NewLabelService(st, nil, time.Minute)
	require.NoError(t, SeedLabels(ctx, labels, "All"))
	require.NoError(t, SeedLabels(ctx, labels, "All"))

	list, err := labels.Labels(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(services.DefaultLabels("All")))

	articles := services.NewArticleService(st, nil)
	require.NoError(t, SeedDemo(ctx, st, articles, list, "All"))
	first, err := st.ListArticles(ctx, store.ArticleQuery{All: true, Limit: 100})
	require.NoError(t, err)
	require.Len(t, first, len(list)-1)

	require.NoError(t, SeedDemo(ctx, st, articles, list, "All"), "re-seeding is a no-op")
	again, err := st.ListArticles(ctx, store.ArticleQuery{All: true, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, again, len(first))

	u, err := st.GetUser(ctx, "u1001")
	require.NoError(t, err)
	assert.NotEmpty(t, u.Avatar)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}
