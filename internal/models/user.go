package models

// InterestSet 用户文档上的成员集合字段名
type InterestSet string

const (
	SetArticleLikes InterestSet = "article_likes"
	SetAuthorLikes  InterestSet = "author_likes"
	SetThumbsUp     InterestSet = "thumbs_up_articles"
)

// Valid reports whether s names one of the three interest sets.
func (s InterestSet) Valid() bool {
	switch s {
	case SetArticleLikes, SetAuthorLikes, SetThumbsUp:
		return true
	}
	return false
}

type User struct {
	ID               string   `json:"id" bson:"_id"`
	AuthorName       string   `json:"author_name" bson:"author_name"`
	Avatar           string   `json:"avatar" bson:"avatar"`
	Professional     string   `json:"professional" bson:"professional"`
	Status           string   `json:"status" bson:"status"`
	ArticleLikes     []string `json:"article_likes" bson:"article_likes"`
	AuthorLikes      []string `json:"author_likes" bson:"author_likes"`
	ThumbsUpArticles []string `json:"thumbs_up_articles" bson:"thumbs_up_articles"`
}

// Interests 返回指定集合的当前成员
func (u *User) Interests(set InterestSet) []string {
	switch set {
	case SetArticleLikes:
		return u.ArticleLikes
	case SetAuthorLikes:
		return u.AuthorLikes
	case SetThumbsUp:
		return u.ThumbsUpArticles
	}
	return nil
}

// Normalize replaces nil sets with empty ones so they serialize as [].
func (u *User) Normalize() {
	if u.ArticleLikes == nil {
		u.ArticleLikes = []string{}
	}
	if u.AuthorLikes == nil {
		u.AuthorLikes = []string{}
	}
	if u.ThumbsUpArticles == nil {
		u.ThumbsUpArticles = []string{}
	}
}
