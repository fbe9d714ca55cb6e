package services

import (
	"context"
	"fmt"
	"time"

	"feedthread/internal/logger"
	"feedthread/internal/metrics"
	"feedthread/internal/models"
	"feedthread/internal/store"
	"feedthread/internal/utils"

	"go.uber.org/zap"
)

// PostCommentInput 发表评论或回复
//
// CommentID 为空时发表顶层评论；否则回复该评论。IsReply 为真时
// ReplyID 指向被回复的二级回复，用它的作者名填充 To。
type PostCommentInput struct {
	ArticleID string
	UserID    string
	Content   string
	CommentID string
	ReplyID   string
	IsReply   bool
}

type PostedComment struct {
	ArticleID string          `json:"article_id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Comment   *models.Comment `json:"comment,omitempty"`
	Reply     *models.Reply   `json:"reply,omitempty"`
}

type ThreadService struct {
	store store.Store
	now   func() time.Time
}

func NewThreadService(st store.Store) *ThreadService {
	return &ThreadService{store: st, now: time.Now}
}

func (s *ThreadService) Post(ctx context.Context, in PostCommentInput) (*PostedComment, error) {
	content := utils.SanitizeText(in.Content)
	switch {
	case in.ArticleID == "" || in.UserID == "":
		return nil, malformed("article_id and user_id are required")
	case content == "":
		return nil, malformed("comment content is empty")
	case in.IsReply && (in.CommentID == "" || in.ReplyID == ""):
		return nil, malformed("is_reply needs comment_id and reply_id")
	}

	user, err := s.store.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	article, err := s.store.GetArticle(ctx, in.ArticleID)
	if err != nil {
		return nil, mapNotFound(err, ErrArticleNotFound)
	}

	now := s.now()
	node := models.Node{
		CommentID:  s.newID(article, now),
		Content:    content,
		CreateTime: now.UnixMilli(),
		Author: models.CommentAuthor{
			AuthorID:     user.ID,
			AuthorName:   user.AuthorName,
			Avatar:       user.Avatar,
			Professional: user.Professional,
		},
	}

	if in.CommentID == "" {
		c := models.Comment{Node: node, Replys: []models.Reply{}}
		if err := s.store.Apply(ctx, store.PushComment(article.ID, c)); err != nil {
			return nil, fmt.Errorf("push comment: %w", mapNotFound(err, ErrArticleNotFound))
		}
		metrics.Comments.WithLabelValues("comment").Inc()
		logger.Info("comment posted", zap.String("article_id", article.ID), zap.String("comment_id", c.CommentID))
		return &PostedComment{ArticleID: article.ID, Comment: &c}, nil
	}

	index, to, err := locateTarget(article.Comments, in.CommentID, in.ReplyID, in.IsReply)
	if err != nil {
		return nil, err
	}
	node.IsReply = true
	r := models.Reply{Node: node, To: to}
	if err := s.store.Apply(ctx, store.PushReply(article.ID, index, in.CommentID, r)); err != nil {
		return nil, fmt.Errorf("push reply: %w", mapNotFound(err, ErrArticleNotFound))
	}
	metrics.Comments.WithLabelValues("reply").Inc()
	logger.Info("reply posted",
		zap.String("article_id", article.ID),
		zap.String("parent_id", in.CommentID),
		zap.String("comment_id", r.CommentID),
		zap.Int("index", index),
	)
	return &PostedComment{ArticleID: article.ID, ParentID: in.CommentID, Reply: &r}, nil
}

// locateTarget finds the comment to reply to and the name the reply is
// addressed to. Nothing is written when either lookup fails.
func locateTarget(comments []models.Comment, commentID, replyID string, isReply bool) (int, string, error) {
	for i := range comments {
		if comments[i].CommentID != commentID {
			continue
		}
		if !isReply {
			return i, comments[i].Author.AuthorName, nil
		}
		r, ok := comments[i].FindReply(replyID)
		if !ok {
			return 0, "", fmt.Errorf("%w: %s", ErrReplyNotFound, replyID)
		}
		return i, r.Author.AuthorName, nil
	}
	return 0, "", fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
}

// newID draws ids until one is unused in this article's thread.
func (s *ThreadService) newID(a *models.Article, now time.Time) string {
	used := make(map[string]struct{})
	for _, c := range a.Comments {
		used[c.CommentID] = struct{}{}
		for _, r := range c.Replys {
			used[r.CommentID] = struct{}{}
		}
	}
	for {
		id := utils.NewCommentID(now)
		if _, dup := used[id]; !dup {
			return id
		}
	}
}
