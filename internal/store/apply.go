package store

import (
	"fmt"

	"feedthread/internal/models"
)

// ApplyToArticle applies p to an in-memory article. Backends without
// native positional updates load the document under a lock, call this and
// write the touched column back. It returns the name of that column.
func ApplyToArticle(a *models.Article, p Patch) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.Guard != nil {
		if err := checkGuard(a, p.Guard); err != nil {
			return "", err
		}
	}

	root := p.Path[0]
	switch p.Op {
	case OpInc:
		if len(p.Path) != 1 {
			return "", fmt.Errorf("patch %s: nested increment not supported", p)
		}
		by := p.Value.(int64)
		switch root {
		case "browse_count":
			a.BrowseCount += by
		case "thumbs_up_count":
			a.ThumbsUpCount += by
		default:
			return "", fmt.Errorf("patch %s: unknown counter", p)
		}
		return root, nil

	case OpUnshift:
		if root != "comments" {
			return "", fmt.Errorf("patch %s: unknown array", p)
		}
		switch len(p.Path) {
		case 1:
			c, ok := p.Value.(models.Comment)
			if !ok {
				return "", fmt.Errorf("patch %s: want models.Comment, got %T", p, p.Value)
			}
			a.Comments = append([]models.Comment{c}, a.Comments...)
		case 3:
			i, ok := p.Path.Index(1)
			if !ok || p.Path[2] != "replys" {
				return "", fmt.Errorf("patch %s: unsupported path", p)
			}
			if i >= len(a.Comments) {
				return "", ErrConflict
			}
			r, ok := p.Value.(models.Reply)
			if !ok {
				return "", fmt.Errorf("patch %s: want models.Reply, got %T", p, p.Value)
			}
			a.Comments[i].Replys = append([]models.Reply{r}, a.Comments[i].Replys...)
		default:
			return "", fmt.Errorf("patch %s: unsupported path", p)
		}
		return root, nil
	}
	return "", fmt.Errorf("patch %s: unknown op", p)
}

func checkGuard(a *models.Article, g *Guard) error {
	// 目前只支持 comments.<i>.comment_id
	if len(g.Path) != 3 || g.Path[0] != "comments" || g.Path[2] != "comment_id" {
		return fmt.Errorf("unsupported guard path %s", g.Path)
	}
	i, ok := g.Path.Index(1)
	if !ok {
		return fmt.Errorf("unsupported guard path %s", g.Path)
	}
	if i >= len(a.Comments) || a.Comments[i].CommentID != g.Equals {
		return ErrConflict
	}
	return nil
}
