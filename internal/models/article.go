package models

import (
	"time"
)

// AuthorSnapshot 发帖时复制的作者信息，之后不随用户资料变化
type AuthorSnapshot struct {
	ID         string `json:"id" bson:"id"`
	AuthorName string `json:"author_name" bson:"author_name"`
	Avatar     string `json:"avatar" bson:"avatar"`
	Status     string `json:"status" bson:"status"`
}

type Article struct {
	ID            string         `json:"id" bson:"_id"`
	Title         string         `json:"title" bson:"title"`
	Classify      string         `json:"classify" bson:"classify"`
	Author        AuthorSnapshot `json:"author" bson:"author"`
	BrowseCount   int64          `json:"browse_count" bson:"browse_count"`
	ThumbsUpCount int64          `json:"thumbs_up_count" bson:"thumbs_up_count"`
	Comments      []Comment      `json:"comments,omitempty" bson:"comments"`
	Content       string         `json:"content,omitempty" bson:"content"`
	Cover         []string       `json:"cover" bson:"cover"`
	CreateTime    string         `json:"create_time" bson:"create_time"` // 展示用，形如 2024.05.01 09:30
	CreatedAt     time.Time      `json:"-" bson:"created_at"`
}

// Normalize replaces nil slices with empty ones.
func (a *Article) Normalize() {
	if a.Comments == nil {
		a.Comments = []Comment{}
	}
	if a.Cover == nil {
		a.Cover = []string{}
	}
	for i := range a.Comments {
		if a.Comments[i].Replys == nil {
			a.Comments[i].Replys = []Reply{}
		}
	}
}

// ListItem 列表投影：不含正文和评论
type ListItem struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Classify      string         `json:"classify"`
	Author        AuthorSnapshot `json:"author"`
	BrowseCount   int64          `json:"browse_count"`
	ThumbsUpCount int64          `json:"thumbs_up_count"`
	Cover         []string       `json:"cover"`
	CreateTime    string         `json:"create_time"`

	// 按查看者填充
	IsLike bool `json:"is_like"`
}

// NewListItem copies the shared fields of a into a list projection.
func NewListItem(a *Article) ListItem {
	return ListItem{
		ID:            a.ID,
		Title:         a.Title,
		Classify:      a.Classify,
		Author:        a.Author,
		BrowseCount:   a.BrowseCount,
		ThumbsUpCount: a.ThumbsUpCount,
		Cover:         a.Cover,
		CreateTime:    a.CreateTime,
	}
}

// Detail 详情投影：含正文，不含评论（评论单独分页接口获取）
type Detail struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Classify      string         `json:"classify"`
	Author        AuthorSnapshot `json:"author"`
	BrowseCount   int64          `json:"browse_count"`
	ThumbsUpCount int64          `json:"thumbs_up_count"`
	Content       string         `json:"content"`
	ContentHTML   string         `json:"content_html"`
	Cover         []string       `json:"cover"`
	CreateTime    string         `json:"create_time"`
	CommentCount  int            `json:"comment_count"`

	IsAuthorLike bool `json:"is_author_like"`
	IsLike       bool `json:"is_like"`
	IsThumbsUp   bool `json:"is_thumbs_up"`
}

// NewDetail copies the shared fields of a into a detail projection.
func NewDetail(a *Article) Detail {
	return Detail{
		ID:            a.ID,
		Title:         a.Title,
		Classify:      a.Classify,
		Author:        a.Author,
		BrowseCount:   a.BrowseCount,
		ThumbsUpCount: a.ThumbsUpCount,
		Content:       a.Content,
		Cover:         a.Cover,
		CreateTime:    a.CreateTime,
		CommentCount:  len(a.Comments),
	}
}
