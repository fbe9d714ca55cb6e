package services

import (
	"context"
	"fmt"

	"feedthread/internal/interest"
	"feedthread/internal/logger"
	"feedthread/internal/metrics"
	"feedthread/internal/models"
	"feedthread/internal/store"

	"go.uber.org/zap"
)

type ThumbsResult struct {
	ArticleID string `json:"article_id"`
	Already   bool   `json:"already"`
}

// ThumbsService 点赞只增不减，每个用户每篇文章最多计一次
type ThumbsService struct {
	store     store.Store
	projector *Projector
}

func NewThumbsService(st store.Store, projector *Projector) *ThumbsService {
	return &ThumbsService{store: st, projector: projector}
}

// Give records a first-time thumbs-up.
//
// The user's set is claimed first with a conditional add; only the request
// that wins that add increments the article counter. Two concurrent first
// thumbs therefore count once. If the increment fails after the claim the
// count stays one short, it is never inflated.
func (s *ThumbsService) Give(ctx context.Context, userID, articleID string) (*ThumbsResult, error) {
	if userID == "" || articleID == "" {
		return nil, malformed("user_id and article_id are required")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	if interest.Contains(user.ThumbsUpArticles, articleID) {
		metrics.Thumbs.WithLabelValues("already").Inc()
		return &ThumbsResult{ArticleID: articleID, Already: true}, nil
	}
	if _, err := s.store.GetArticle(ctx, articleID); err != nil {
		return nil, mapNotFound(err, ErrArticleNotFound)
	}

	added, err := s.store.AddMemberIfAbsent(ctx, userID, models.SetThumbsUp, articleID)
	if err != nil {
		return nil, fmt.Errorf("claim thumbs-up: %w", mapNotFound(err, ErrUserNotFound))
	}
	if !added {
		metrics.Thumbs.WithLabelValues("already").Inc()
		return &ThumbsResult{ArticleID: articleID, Already: true}, nil
	}

	if err := s.store.Apply(ctx, store.Inc(store.Articles, articleID, "thumbs_up_count", 1)); err != nil {
		logger.Error("thumbs-up claimed but counter not incremented",
			zap.String("user_id", userID),
			zap.String("article_id", articleID),
			zap.Error(err),
		)
		metrics.Thumbs.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("increment thumbs_up_count: %w", mapNotFound(err, ErrArticleNotFound))
	}

	metrics.Thumbs.WithLabelValues("added").Inc()
	if s.projector != nil {
		s.projector.InvalidateLists(ctx)
	}
	return &ThumbsResult{ArticleID: articleID}, nil
}
