package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedthread/internal/logger"
	"feedthread/internal/models"
	"feedthread/internal/services"
	"feedthread/internal/store"
	"feedthread/internal/utils"

	"go.uber.org/zap"
)

// SeedLabels 初始化分类标签，已有数据时跳过
func SeedLabels(ctx context.Context, labels *services.LabelService, all string) error {
	seeded, err := labels.SeedLabels(ctx, all)
	if err != nil {
		return fmt.Errorf("seed labels: %w", err)
	}
	if seeded {
		logger.Info("initial labels created")
	} else {
		logger.Info("labels already seeded, skipping")
	}
	return nil
}

var demoUsers = []models.User{
	{ID: "u1001", AuthorName: "Lin", Professional: "Frontend engineer", Status: "active"},
	{ID: "u1002", AuthorName: "Chen", Professional: "Backend engineer", Status: "active"},
	{ID: "u1003", AuthorName: "Zhao", Professional: "Designer", Status: "active"},
}

// SeedDemo creates demo users and one article per label for local
// development. If any demo user already exists the data is considered
// seeded and nothing is written.
func SeedDemo(ctx context.Context, st store.Store, articles *services.ArticleService, labels []models.Label, all string) error {
	for _, u := range demoUsers {
		_, err := st.GetUser(ctx, u.ID)
		if err == nil {
			logger.Info("demo data already seeded, skipping", zap.String("user_id", u.ID))
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	for _, u := range demoUsers {
		u := u
		u.Avatar = utils.AvatarOrDefault(u.Avatar)
		if err := st.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("create demo user %s: %w", u.ID, err)
		}
	}

	n := 0
	for _, l := range labels {
		if l.Name == all {
			continue
		}
		author := demoUsers[n%len(demoUsers)]
		a, err := articles.Create(ctx, services.CreateArticleInput{
			UserID:   author.ID,
			Title:    "Getting started with " + l.Name,
			Classify: l.Name,
			Content:  fmt.Sprintf("## %s\n\nDemo article seeded at %s.", l.Name, time.Now().Format(time.RFC3339)),
		})
		if err != nil {
			return fmt.Errorf("create demo article: %w", err)
		}
		logger.Debug("demo article created", zap.String("article_id", a.ID), zap.String("classify", l.Name))
		n++
	}
	logger.Info("demo data seeded", zap.Int("users", len(demoUsers)), zap.Int("articles", n))
	return nil
}
