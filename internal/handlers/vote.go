package handlers

import (
	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	thumbs *services.ThumbsService
}

func NewVoteHandler(thumbs *services.ThumbsService) *VoteHandler {
	return &VoteHandler{thumbs: thumbs}
}

// ThumbsUp 点赞，重复点赞返回提示但仍是 200
func (h *VoteHandler) ThumbsUp(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.thumbs.Give(c.Request.Context(), viewer(c, req.UserID), req.ArticleID)
	if err != nil {
		Fail(c, err)
		return
	}
	if res.Already {
		OK(c, "You have already given a like", res)
		return
	}
	OK(c, "Like Successfully", res)
}
