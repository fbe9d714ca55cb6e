package handlers

import (
	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
)

type toggleRequest struct {
	UserID    string `form:"user_id" json:"user_id"`
	ArticleID string `form:"article_id" json:"article_id"`
	AuthorID  string `form:"author_id" json:"author_id"`
}

// BookmarkHandler 收藏文章与关注作者
type BookmarkHandler struct {
	interests *services.InterestService
}

func NewBookmarkHandler(interests *services.InterestService) *BookmarkHandler {
	return &BookmarkHandler{interests: interests}
}

// ToggleArticle 切换收藏状态 - 收藏/取消收藏
func (h *BookmarkHandler) ToggleArticle(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.interests.ToggleArticleLike(c.Request.Context(), viewer(c, req.UserID), req.ArticleID)
	if err != nil {
		Fail(c, err)
		return
	}
	msg := "Bookmark removed"
	if res.Active {
		msg = "Bookmarked successfully"
	}
	OK(c, msg, res)
}

// ToggleAuthor 切换关注状态
func (h *BookmarkHandler) ToggleAuthor(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.interests.ToggleAuthorFollow(c.Request.Context(), viewer(c, req.UserID), req.AuthorID)
	if err != nil {
		Fail(c, err)
		return
	}
	msg := "Unfollowed"
	if res.Active {
		msg = "Followed successfully"
	}
	OK(c, msg, res)
}
