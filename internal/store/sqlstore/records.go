package sqlstore

import (
	"time"

	"feedthread/internal/models"

	"gorm.io/datatypes"
)

type userRecord struct {
	ID               string                      `gorm:"primaryKey;size:64"`
	AuthorName       string                      `gorm:"size:100"`
	Avatar           string
	Professional     string                      `gorm:"size:100"`
	Status           string                      `gorm:"size:20"`
	ArticleLikes     datatypes.JSONSlice[string] `gorm:"not null;default:'[]'"`
	AuthorLikes      datatypes.JSONSlice[string] `gorm:"not null;default:'[]'"`
	ThumbsUpArticles datatypes.JSONSlice[string] `gorm:"not null;default:'[]'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) members(set models.InterestSet) []string {
	switch set {
	case models.SetArticleLikes:
		return r.ArticleLikes
	case models.SetAuthorLikes:
		return r.AuthorLikes
	case models.SetThumbsUp:
		return r.ThumbsUpArticles
	}
	return nil
}

func (r *userRecord) toModel() *models.User {
	u := &models.User{
		ID:               r.ID,
		AuthorName:       r.AuthorName,
		Avatar:           r.Avatar,
		Professional:     r.Professional,
		Status:           r.Status,
		ArticleLikes:     r.ArticleLikes,
		AuthorLikes:      r.AuthorLikes,
		ThumbsUpArticles: r.ThumbsUpArticles,
	}
	u.Normalize()
	return u
}

func newUserRecord(u *models.User) *userRecord {
	u.Normalize()
	return &userRecord{
		ID:               u.ID,
		AuthorName:       u.AuthorName,
		Avatar:           u.Avatar,
		Professional:     u.Professional,
		Status:           u.Status,
		ArticleLikes:     u.ArticleLikes,
		AuthorLikes:      u.AuthorLikes,
		ThumbsUpArticles: u.ThumbsUpArticles,
	}
}

type articleRecord struct {
	ID            string `gorm:"primaryKey;size:64"`
	Title         string `gorm:"not null"`
	Classify      string `gorm:"size:64;index:idx_articles_classify_created"`
	AuthorID      string `gorm:"size:64;index"`
	AuthorName    string `gorm:"size:100"`
	AuthorAvatar  string
	AuthorStatus  string                              `gorm:"size:20"`
	BrowseCount   int64                               `gorm:"default:0"`
	ThumbsUpCount int64                               `gorm:"default:0"`
	Comments      datatypes.JSONSlice[models.Comment] `gorm:"not null;default:'[]'"`
	Content       string                              `gorm:"type:text"`
	Cover         datatypes.JSONSlice[string]         `gorm:"not null;default:'[]'"`
	CreateTime    string                              `gorm:"size:16"`
	CreatedAt     time.Time                           `gorm:"index:idx_articles_classify_created"`
}

func (articleRecord) TableName() string { return "articles" }

func (r *articleRecord) toModel() *models.Article {
	a := &models.Article{
		ID:       r.ID,
		Title:    r.Title,
		Classify: r.Classify,
		Author: models.AuthorSnapshot{
			ID:         r.AuthorID,
			AuthorName: r.AuthorName,
			Avatar:     r.AuthorAvatar,
			Status:     r.AuthorStatus,
		},
		BrowseCount:   r.BrowseCount,
		ThumbsUpCount: r.ThumbsUpCount,
		Comments:      r.Comments,
		Content:       r.Content,
		Cover:         r.Cover,
		CreateTime:    r.CreateTime,
		CreatedAt:     r.CreatedAt,
	}
	a.Normalize()
	return a
}

func newArticleRecord(a *models.Article) *articleRecord {
	a.Normalize()
	return &articleRecord{
		ID:            a.ID,
		Title:         a.Title,
		Classify:      a.Classify,
		AuthorID:      a.Author.ID,
		AuthorName:    a.Author.AuthorName,
		AuthorAvatar:  a.Author.Avatar,
		AuthorStatus:  a.Author.Status,
		BrowseCount:   a.BrowseCount,
		ThumbsUpCount: a.ThumbsUpCount,
		Comments:      a.Comments,
		Content:       a.Content,
		Cover:         a.Cover,
		CreateTime:    a.CreateTime,
		CreatedAt:     a.CreatedAt,
	}
}

type labelRecord struct {
	ID   string `gorm:"primaryKey;size:64"`
	Name string `gorm:"not null;unique"`
	Sort int    `gorm:"default:0"`
}

func (labelRecord) TableName() string { return "labels" }
