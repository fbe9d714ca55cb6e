package services

import (
	"context"
	"fmt"
	"strconv"

	"feedthread/internal/logger"
	"feedthread/internal/metrics"
	"feedthread/internal/models"
	"feedthread/internal/store"

	"go.uber.org/zap"
)

// ToggleResult 切换后的集合状态
type ToggleResult struct {
	Set     models.InterestSet `json:"set"`
	Target  string             `json:"target"`
	Active  bool               `json:"active"`
	Members []string           `json:"members"`
}

// InterestService 收藏文章 / 关注作者，两者只差集合名
type InterestService struct {
	store store.Store
}

func NewInterestService(st store.Store) *InterestService {
	return &InterestService{store: st}
}

func (s *InterestService) ToggleArticleLike(ctx context.Context, userID, articleID string) (*ToggleResult, error) {
	return s.Toggle(ctx, userID, models.SetArticleLikes, articleID)
}

func (s *InterestService) ToggleAuthorFollow(ctx context.Context, userID, authorID string) (*ToggleResult, error) {
	return s.Toggle(ctx, userID, models.SetAuthorLikes, authorID)
}

// Toggle flips target in the user's set. Prior membership does not matter;
// the only failure besides storage errors is an unknown user.
func (s *InterestService) Toggle(ctx context.Context, userID string, set models.InterestSet, target string) (*ToggleResult, error) {
	if userID == "" || target == "" {
		return nil, malformed("user and target are required")
	}
	if !set.Valid() {
		return nil, malformed("unknown set %q", set)
	}

	members, active, err := s.store.ToggleMember(ctx, userID, set, target)
	if err != nil {
		return nil, fmt.Errorf("toggle %s: %w", set, mapNotFound(err, ErrUserNotFound))
	}

	metrics.Toggles.WithLabelValues(string(set), strconv.FormatBool(active)).Inc()
	logger.Debug("interest toggled",
		zap.String("user_id", userID),
		zap.String("set", string(set)),
		zap.String("target", target),
		zap.Bool("active", active),
	)
	return &ToggleResult{Set: set, Target: target, Active: active, Members: members}, nil
}

// Profile returns the user's profile together with all three interest sets.
func (s *InterestService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, malformed("user_id is required")
	}
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return u, nil
}
