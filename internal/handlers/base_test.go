package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"feedthread/internal/services"
	"feedthread/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: missing", services.ErrMalformed), http.StatusBadRequest},
		{services.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", services.ErrArticleNotFound), http.StatusNotFound},
		{services.ErrCommentNotFound, http.StatusNotFound},
		{services.ErrReplyNotFound, http.StatusNotFound},
		{fmt.Errorf("push reply: %w", store.ErrConflict), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, msg := statusOf(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.NotEmpty(t, msg)
	}

	_, msg := statusOf(errors.New("pq: password authentication failed"))
	assert.NotContains(t, msg, "password", "storage details must not leak")
}
