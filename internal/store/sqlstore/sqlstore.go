// Package sqlstore implements store.Store on gorm. Interest sets and
// comment threads are JSON columns so a user or article stays one row.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"feedthread/internal/interest"
	"feedthread/internal/models"
	"feedthread/internal/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New migrates the schema and wraps db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&userRecord{}, &articleRecord{}, &labelRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) postgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// lockUser loads a user row, holding a row lock where the dialect has one.
// SQLite serializes writers at the database level instead.
func (s *Store) lockUser(tx *gorm.DB, id string, rec *userRecord) error {
	q := tx
	if s.postgres() {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return notFound(q.First(rec, "id = ?", id).Error)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return rec.toModel(), nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(newUserRecord(u)).Error
}

func (s *Store) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var rec articleRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return rec.toModel(), nil
}

func (s *Store) CreateArticle(ctx context.Context, a *models.Article) error {
	return s.db.WithContext(ctx).Create(newArticleRecord(a)).Error
}

func (s *Store) ListArticles(ctx context.Context, q store.ArticleQuery) ([]models.Article, error) {
	tx := s.db.WithContext(ctx).Model(&articleRecord{})

	var omit []string
	if q.OmitContent {
		omit = append(omit, "content")
	}
	if q.OmitComments {
		omit = append(omit, "comments")
	}
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	if !q.All {
		tx = tx.Where("classify = ?", q.Classify)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []articleRecord
	if err := tx.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Article, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (s *Store) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	var rec articleRecord
	err := s.db.WithContext(ctx).Select("id", "comments").First(&rec, "id = ?", articleID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return rec.toModel().Comments, nil
}

func (s *Store) ToggleMember(ctx context.Context, userID string, set models.InterestSet, target string) ([]string, bool, error) {
	if !set.Valid() {
		return nil, false, fmt.Errorf("unknown interest set %q", set)
	}
	var (
		updated []string
		active  bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := s.lockUser(tx, userID, &rec); err != nil {
			return err
		}
		updated, active = interest.Toggle(rec.members(set), target)
		return tx.Model(&userRecord{}).Where("id = ?", userID).
			Update(string(set), datatypes.JSONSlice[string](updated)).Error
	})
	if err != nil {
		return nil, false, err
	}
	return updated, active, nil
}

func (s *Store) AddMemberIfAbsent(ctx context.Context, userID string, set models.InterestSet, target string) (bool, error) {
	if !set.Valid() {
		return false, fmt.Errorf("unknown interest set %q", set)
	}
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := s.lockUser(tx, userID, &rec); err != nil {
			return err
		}
		var updated []string
		updated, added = interest.Add(rec.members(set), target)
		if !added {
			return nil
		}
		return tx.Model(&userRecord{}).Where("id = ?", userID).
			Update(string(set), datatypes.JSONSlice[string](updated)).Error
	})
	return added, err
}

// Apply runs a patch. Postgres gets a single guarded UPDATE using jsonb
// functions; other dialects load the row inside a transaction.
func (s *Store) Apply(ctx context.Context, p store.Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Collection != store.Articles {
		return fmt.Errorf("patch %s: unsupported collection", p)
	}
	if p.Op == store.OpInc && len(p.Path) == 1 {
		return s.applyInc(ctx, p)
	}
	if s.postgres() {
		return s.applyJSONB(ctx, p)
	}
	return s.applyLocked(ctx, p)
}

func (s *Store) applyInc(ctx context.Context, p store.Patch) error {
	col := p.Path[0]
	if col != "browse_count" && col != "thumbs_up_count" {
		return fmt.Errorf("patch %s: unknown counter", p)
	}
	res := s.db.WithContext(ctx).Model(&articleRecord{}).Where("id = ?", p.DocID).
		UpdateColumn(col, gorm.Expr(col+" + ?", p.Value))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) applyJSONB(ctx context.Context, p store.Patch) error {
	if p.Op != store.OpUnshift || p.Path[0] != "comments" {
		return fmt.Errorf("patch %s: unsupported on postgres", p)
	}
	node, err := json.Marshal(p.Value)
	if err != nil {
		return err
	}

	q := s.db.WithContext(ctx).Model(&articleRecord{}).Where("id = ?", p.DocID)
	if p.Guard != nil {
		q = q.Where("comments #>> ?::text[] = ?", p.Guard.Path.PGArray(), p.Guard.Equals)
	}
	// {0} 或 {i,replys,0}：插到数组最前面
	at := p.Path.Field("0").PGArray()
	res := q.UpdateColumn("comments", gorm.Expr("jsonb_insert(comments, ?::text[], ?::jsonb)", at, string(node)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return s.missOrConflict(ctx, p)
}

func (s *Store) applyLocked(ctx context.Context, p store.Patch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec articleRecord
		if err := tx.First(&rec, "id = ?", p.DocID).Error; err != nil {
			return notFound(err)
		}
		a := rec.toModel()
		col, err := store.ApplyToArticle(a, p)
		if err != nil {
			return err
		}
		return tx.Model(&articleRecord{}).Where("id = ?", p.DocID).
			UpdateColumn(col, datatypes.JSONSlice[models.Comment](a.Comments)).Error
	})
}

func (s *Store) missOrConflict(ctx context.Context, p store.Patch) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&articleRecord{}).Where("id = ?", p.DocID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

func (s *Store) ListLabels(ctx context.Context) ([]models.Label, error) {
	var rows []labelRecord
	if err := s.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Label, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Label{ID: r.ID, Name: r.Name, Sort: r.Sort})
	}
	return out, nil
}

// SaveLabels upserts labels by id.
func (s *Store) SaveLabels(ctx context.Context, labels []models.Label) error {
	if len(labels) == 0 {
		return nil
	}
	rows := make([]labelRecord, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, labelRecord{ID: l.ID, Name: l.Name, Sort: l.Sort})
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sort"}),
	}).Create(&rows).Error
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
