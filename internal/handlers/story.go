package handlers

import (
	"net/http"

	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	projector *services.Projector
	articles  *services.ArticleService
	thread    *services.ThreadService

	// 评论接口未带 article_id 时的兜底值，为空表示必填
	defaultArticleID string
}

func NewStoryHandler(projector *services.Projector, articles *services.ArticleService, thread *services.ThreadService, defaultArticleID string) *StoryHandler {
	return &StoryHandler{
		projector:        projector,
		articles:         articles,
		thread:           thread,
		defaultArticleID: defaultArticleID,
	}
}

type listRequest struct {
	UserID   string `form:"user_id" json:"user_id"`
	Classify string `form:"classify" json:"classify"`
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
}

// List 分页文章列表
func (h *StoryHandler) List(c *gin.Context) {
	var req listRequest
	if !bind(c, &req) {
		return
	}
	items, err := h.projector.List(c.Request.Context(), services.ListQuery{
		ViewerID: viewer(c, req.UserID),
		Classify: req.Classify,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, msgOK, items)
}

// Detail 文章详情
func (h *StoryHandler) Detail(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	d, err := h.projector.Detail(c.Request.Context(), viewer(c, req.UserID), req.ArticleID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, msgOK, d)
}

// Comments 文章评论列表，无需登录
func (h *StoryHandler) Comments(c *gin.Context) {
	var req toggleRequest
	if !bind(c, &req) {
		return
	}
	comments, err := h.projector.Comments(c.Request.Context(), req.ArticleID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, msgOK, comments)
}

type commentRequest struct {
	UserID    string `form:"user_id" json:"user_id"`
	ArticleID string `form:"article_id" json:"article_id"`
	Content   string `form:"content" json:"content"`
	CommentID string `form:"comment_id" json:"comment_id"`
	ReplyID   string `form:"reply_id" json:"reply_id"`
	IsReply   bool   `form:"is_reply" json:"is_reply"`
}

// CreateComment 发表评论或回复
func (h *StoryHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}
	articleID := req.ArticleID
	if articleID == "" {
		articleID = h.defaultArticleID
	}
	res, err := h.thread.Post(c.Request.Context(), services.PostCommentInput{
		ArticleID: articleID,
		UserID:    viewer(c, req.UserID),
		Content:   req.Content,
		CommentID: req.CommentID,
		ReplyID:   req.ReplyID,
		IsReply:   req.IsReply,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, "Comment posted", res)
}

type createRequest struct {
	UserID   string   `form:"user_id" json:"user_id"`
	Title    string   `form:"title" json:"title"`
	Classify string   `form:"classify" json:"classify"`
	Content  string   `form:"content" json:"content"`
	Cover    []string `form:"cover" json:"cover"`
}

// Create 发布文章
func (h *StoryHandler) Create(c *gin.Context) {
	var req createRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.articles.Create(c.Request.Context(), services.CreateArticleInput{
		UserID:   viewer(c, req.UserID),
		Title:    req.Title,
		Classify: req.Classify,
		Content:  req.Content,
		Cover:    req.Cover,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Message: "Article published", Data: a})
}
