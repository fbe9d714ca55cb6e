package handlers

import (
	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	interests *services.InterestService
}

func NewUserHandler(interests *services.InterestService) *UserHandler {
	return &UserHandler{interests: interests}
}

// Profile 当前用户资料及收藏、关注、点赞集合
func (h *UserHandler) Profile(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.interests.Profile(c.Request.Context(), viewer(c, req.UserID))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, msgOK, u)
}
