package services

import (
	"context"
	"time"

	"feedthread/internal/cache"
	"feedthread/internal/models"
	"feedthread/internal/store"
)

const labelsKey = "labels:all"

// LabelCatalog lists the classification tags offered to clients.
type LabelCatalog interface {
	Labels(ctx context.Context) ([]models.Label, error)
}

type LabelService struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
}

var _ LabelCatalog = (*LabelService)(nil)

func NewLabelService(st store.Store, c cache.Cache, ttl time.Duration) *LabelService {
	if c == nil {
		c = cache.Nop{}
	}
	return &LabelService{store: st, cache: c, ttl: ttl}
}

func (s *LabelService) Labels(ctx context.Context) ([]models.Label, error) {
	var labels []models.Label
	if s.ttl > 0 && s.cache.Get(ctx, labelsKey, &labels) {
		return labels, nil
	}
	labels, err := s.store.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.cache.Set(ctx, labelsKey, labels, s.ttl)
	}
	return labels, nil
}

// Save upserts labels and drops the cached catalog.
func (s *LabelService) Save(ctx context.Context, labels []models.Label) error {
	if err := s.store.SaveLabels(ctx, labels); err != nil {
		return err
	}
	s.cache.Delete(ctx, labelsKey)
	return nil
}

// DefaultLabels 初始分类，All 必须排第一
func DefaultLabels(all string) []models.Label {
	return []models.Label{
		{ID: "all", Name: all, Sort: 0},
		{ID: "frontend", Name: "Frontend", Sort: 1},
		{ID: "backend", Name: "Backend", Sort: 2},
		{ID: "mobile", Name: "Mobile", Sort: 3},
		{ID: "ai", Name: "AI", Sort: 4},
		{ID: "career", Name: "Career", Sort: 5},
	}
}

// SeedLabels writes DefaultLabels when the catalog is empty.
func (s *LabelService) SeedLabels(ctx context.Context, all string) (bool, error) {
	existing, err := s.store.ListLabels(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, s.Save(ctx, DefaultLabels(all))
}
