package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"feedthread/internal/logger"
	"feedthread/internal/middleware"
	"feedthread/internal/services"
	"feedthread/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一返回格式，HTTP 状态码与 code 一致
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const msgOK = "The data request was successful."

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: message, Data: data})
}

// Fail maps a service error to a status code and writes the envelope.
// Storage failures are logged and answered with a generic message.
func Fail(c *gin.Context, err error) {
	code, message := statusOf(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMalformed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrArticleNotFound):
		return http.StatusNotFound, "Article not found"
	case errors.Is(err, services.ErrCommentNotFound):
		return http.StatusNotFound, "Comment not found"
	case errors.Is(err, services.ErrReplyNotFound):
		return http.StatusNotFound, "Reply not found"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "The comment thread changed, please retry"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// bind decodes query, form or JSON input. A decoding error counts as a
// malformed request.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		Fail(c, fmt.Errorf("%w: %v", services.ErrMalformed, err))
		return false
	}
	return true
}

// viewer prefers an explicit user_id from the request over the identity
// resolved by middleware.
func viewer(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return middleware.ViewerID(c)
}
