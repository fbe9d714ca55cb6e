package models

type CommentAuthor struct {
	AuthorID     string `json:"author_id" bson:"author_id"`
	AuthorName   string `json:"author_name" bson:"author_name"`
	Avatar       string `json:"avatar" bson:"avatar"`
	Professional string `json:"professional" bson:"professional"`
}

// Node 评论树节点的公共字段
type Node struct {
	CommentID  string        `json:"comment_id" bson:"comment_id"`
	Content    string        `json:"comment_content" bson:"comment_content"`
	CreateTime int64         `json:"create_time" bson:"create_time"` // unix 毫秒
	IsReply    bool          `json:"is_reply" bson:"is_reply"`
	Author     CommentAuthor `json:"author" bson:"author"`
}

// Comment 顶层评论，最新的排在最前
type Comment struct {
	Node   `bson:",inline"`
	Replys []Reply `json:"replys" bson:"replys"`
}

// Reply 二级回复，To 为被回复者的名字
type Reply struct {
	Node `bson:",inline"`
	To   string `json:"to" bson:"to"`
}

// FindReply returns the reply with the given id, if any.
func (c *Comment) FindReply(id string) (*Reply, bool) {
	for i := range c.Replys {
		if c.Replys[i].CommentID == id {
			return &c.Replys[i], true
		}
	}
	return nil, false
}
