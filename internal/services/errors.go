package services

import (
	"errors"
	"fmt"

	"feedthread/internal/store"
)

var (
	ErrMalformed       = errors.New("malformed request")
	ErrUserNotFound    = errors.New("user not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyNotFound   = errors.New("reply not found")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// mapNotFound translates store.ErrNotFound into the domain error kind.
func mapNotFound(err, kind error) error {
	if errors.Is(err, store.ErrNotFound) {
		return kind
	}
	return err
}
