package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedthread/internal/logger"
	"feedthread/internal/models"
	"feedthread/internal/store"
	"feedthread/internal/utils"

	"go.uber.org/zap"
)

type CreateArticleInput struct {
	UserID   string
	Title    string
	Classify string
	Content  string
	Cover    []string
}

type ArticleService struct {
	store     store.Store
	projector *Projector
	now       func() time.Time
}

func NewArticleService(st store.Store, projector *Projector) *ArticleService {
	return &ArticleService{store: st, projector: projector, now: time.Now}
}

// Create 发布文章，作者信息取自当前用户并固化在文章上
func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	title := strings.TrimSpace(in.Title)
	classify := strings.TrimSpace(in.Classify)
	if in.UserID == "" || title == "" || classify == "" {
		return nil, malformed("user_id, title and classify are required")
	}

	user, err := s.store.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	cover := in.Cover
	if len(cover) == 0 && in.Content != "" {
		// 未指定封面时取正文前三张图
		cover = utils.ExtractImages(string(utils.RenderMarkdown(in.Content)))
		if len(cover) > 3 {
			cover = cover[:3]
		}
	}

	now := s.now()
	a := &models.Article{
		ID:       utils.NewArticleID(now),
		Title:    title,
		Classify: classify,
		Author: models.AuthorSnapshot{
			ID:         user.ID,
			AuthorName: user.AuthorName,
			Avatar:     user.Avatar,
			Status:     user.Status,
		},
		Comments:   []models.Comment{},
		Content:    in.Content,
		Cover:      cover,
		CreateTime: utils.FormatCreateTime(now),
		CreatedAt:  now,
	}
	if err := s.store.CreateArticle(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if s.projector != nil {
		s.projector.InvalidateLists(ctx)
	}
	logger.Info("article created", zap.String("article_id", a.ID), zap.String("user_id", user.ID))
	return a, nil
}
