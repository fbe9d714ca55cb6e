package services

import (
	"context"
	"fmt"
	"time"

	"feedthread/internal/cache"
	"feedthread/internal/interest"
	"feedthread/internal/metrics"
	"feedthread/internal/models"
	"feedthread/internal/store"
	"feedthread/internal/utils"
)

const (
	listGenKey = "articles:list:gen"
	htmlTTL    = time.Hour
)

type ProjectorOptions struct {
	AllLabel        string
	DefaultPageSize int
	MaxPageSize     int
	ListCacheTTL    time.Duration
}

type ListQuery struct {
	ViewerID string
	Classify string
	Page     int
	PageSize int
}

// Projector serves list and detail reads. Article pages are cached without
// any viewer state; is_like and friends are filled in on every call from
// the viewer's current user document.
type Projector struct {
	store store.Store
	cache cache.Cache
	opts  ProjectorOptions
}

func NewProjector(st store.Store, c cache.Cache, opts ProjectorOptions) *Projector {
	if c == nil {
		c = cache.Nop{}
	}
	if opts.AllLabel == "" {
		opts.AllLabel = "All"
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 6
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 50
	}
	return &Projector{store: st, cache: c, opts: opts}
}

// List 分页获取文章列表，classify 为 All 时不过滤
func (p *Projector) List(ctx context.Context, q ListQuery) ([]models.ListItem, error) {
	if q.ViewerID == "" || q.Classify == "" {
		return nil, malformed("user_id and classify are required")
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = p.opts.DefaultPageSize
	}
	if q.Page < 1 || q.PageSize < 1 {
		return nil, malformed("page and page_size must be positive")
	}
	if q.PageSize > p.opts.MaxPageSize {
		q.PageSize = p.opts.MaxPageSize
	}

	viewer, err := p.store.GetUser(ctx, q.ViewerID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	items, err := p.sharedPage(ctx, q)
	if err != nil {
		return nil, err
	}

	liked := interest.Index(viewer.ArticleLikes)
	for i := range items {
		_, items[i].IsLike = liked[items[i].ID]
	}
	return items, nil
}

func (p *Projector) sharedPage(ctx context.Context, q ListQuery) ([]models.ListItem, error) {
	key := fmt.Sprintf("articles:list:%d:%s:%d:%d", p.listGeneration(ctx), q.Classify, q.Page, q.PageSize)
	var items []models.ListItem
	if p.opts.ListCacheTTL > 0 && p.cache.Get(ctx, key, &items) {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return items, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	articles, err := p.store.ListArticles(ctx, store.ArticleQuery{
		Classify:     q.Classify,
		All:          q.Classify == p.opts.AllLabel,
		Skip:         (q.Page - 1) * q.PageSize,
		Limit:        q.PageSize,
		OmitContent:  true,
		OmitComments: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	items = make([]models.ListItem, 0, len(articles))
	for i := range articles {
		items = append(items, models.NewListItem(&articles[i]))
	}
	if p.opts.ListCacheTTL > 0 {
		p.cache.Set(ctx, key, items, p.opts.ListCacheTTL)
	}
	return items, nil
}

func (p *Projector) listGeneration(ctx context.Context) int64 {
	var gen int64
	p.cache.Get(ctx, listGenKey, &gen)
	return gen
}

// InvalidateLists retires every cached list page by moving to a new key
// generation. Old pages age out through their TTL.
func (p *Projector) InvalidateLists(ctx context.Context) {
	p.cache.Set(ctx, listGenKey, p.listGeneration(ctx)+1, 24*time.Hour)
}

// Detail 文章详情，浏览数 +1 后返回
// 会写入文章的 browse_count，并让已缓存的列表页失效
func (p *Projector) Detail(ctx context.Context, viewerID, articleID string) (*models.Detail, error) {
	if viewerID == "" || articleID == "" {
		return nil, malformed("user_id and article_id are required")
	}

	viewer, err := p.store.GetUser(ctx, viewerID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	if err := p.store.Apply(ctx, store.Inc(store.Articles, articleID, "browse_count", 1)); err != nil {
		return nil, mapNotFound(err, ErrArticleNotFound)
	}
	p.InvalidateLists(ctx)
	article, err := p.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, mapNotFound(err, ErrArticleNotFound)
	}

	d := models.NewDetail(article)
	d.ContentHTML = p.renderedContent(ctx, article)
	d.IsAuthorLike = interest.Contains(viewer.AuthorLikes, article.Author.ID)
	d.IsLike = interest.Contains(viewer.ArticleLikes, article.ID)
	d.IsThumbsUp = interest.Contains(viewer.ThumbsUpArticles, article.ID)
	return &d, nil
}

// renderedContent caches the markdown rendering; article content is never
// edited after creation.
func (p *Projector) renderedContent(ctx context.Context, a *models.Article) string {
	key := "article:html:" + a.ID
	var html string
	if p.cache.Get(ctx, key, &html) {
		return html
	}
	html = string(utils.RenderMarkdown(a.Content))
	p.cache.Set(ctx, key, html, htmlTTL)
	return html
}

// Comments returns the thread of an article, newest first.
func (p *Projector) Comments(ctx context.Context, articleID string) ([]models.Comment, error) {
	if articleID == "" {
		return nil, malformed("article_id is required")
	}
	comments, err := p.store.ListComments(ctx, articleID)
	if err != nil {
		return nil, mapNotFound(err, ErrArticleNotFound)
	}
	return comments, nil
}
