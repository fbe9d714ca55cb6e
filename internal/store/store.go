// Package store defines the document persistence contract shared by the
// SQL and MongoDB backends.
package store

import (
	"context"
	"errors"

	"feedthread/internal/models"
)

var (
	ErrNotFound = errors.New("store: document not found")
	// ErrConflict is returned when a patch guard no longer matches, e.g. a
	// comment moved to another index between read and write.
	ErrConflict = errors.New("store: patch precondition failed")
)

type Collection string

const (
	Users    Collection = "user"
	Articles Collection = "article"
	Labels   Collection = "label"
)

// ArticleQuery selects one page of articles ordered by creation time.
type ArticleQuery struct {
	Classify     string
	All          bool
	Skip         int
	Limit        int
	OmitContent  bool
	OmitComments bool
}

type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error

	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, a *models.Article) error
	ListArticles(ctx context.Context, q ArticleQuery) ([]models.Article, error)
	ListComments(ctx context.Context, articleID string) ([]models.Comment, error)

	// ToggleMember flips target in one of the user's interest sets as a
	// single atomic step and returns the resulting members.
	ToggleMember(ctx context.Context, userID string, set models.InterestSet, target string) ([]string, bool, error)
	// AddMemberIfAbsent adds target only if it is not yet a member.
	// It returns false without error when target was already present.
	AddMemberIfAbsent(ctx context.Context, userID string, set models.InterestSet, target string) (bool, error)

	Apply(ctx context.Context, p Patch) error

	ListLabels(ctx context.Context) ([]models.Label, error)
	SaveLabels(ctx context.Context, labels []models.Label) error

	Close(ctx context.Context) error
}
