package services

import (
	"context"
	"testing"
	"time"

	"feedthread/internal/models"
	"feedthread/internal/store/sqlstore"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlstore.OpenSQLite(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func createUser(t *testing.T, s *sqlstore.Store, id, name string) {
	t.Helper()
	require.NoError(t, s.CreateUser(context.Background(), &models.User{
		ID:           id,
		AuthorName:   name,
		Avatar:       name + ".png",
		Professional: "engineer",
		Status:       "active",
	}))
}

func createArticle(t *testing.T, s *sqlstore.Store, id, classify, authorID string, at time.Time) {
	t.Helper()
	require.NoError(t, s.CreateArticle(context.Background(), &models.Article{
		ID:        id,
		Title:     "title " + id,
		Classify:  classify,
		Author:    models.AuthorSnapshot{ID: authorID, AuthorName: "author " + authorID},
		Content:   "# heading\n\nbody of " + id,
		CreatedAt: at,
	}))
}
