package router

import (
	"net/http"

	"feedthread/internal/handlers"
	"feedthread/internal/middleware"
	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Interests *services.InterestService
	Thumbs    *services.ThumbsService
	Thread    *services.ThreadService
	Projector *services.Projector
	Articles  *services.ArticleService
	Labels    services.LabelCatalog

	DefaultArticleID string
	RateLimitRPS     float64
	RateLimitBurst   int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	bookmarkHandler := handlers.NewBookmarkHandler(d.Interests)
	voteHandler := handlers.NewVoteHandler(d.Thumbs)
	storyHandler := handlers.NewStoryHandler(d.Projector, d.Articles, d.Thread, d.DefaultArticleID)
	nodeHandler := handlers.NewNodeHandler(d.Labels)
	userHandler := handlers.NewUserHandler(d.Interests)

	// 运维 (Ops)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LoadViewer())
	{
		// 读接口 (Reads)
		api.GET("/articles", storyHandler.List)             // 文章列表
		api.GET("/article/detail", storyHandler.Detail)     // 文章详情
		api.GET("/article/comments", storyHandler.Comments) // 评论列表
		api.GET("/labels", nodeHandler.ListLabels)          // 分类标签
		api.GET("/user/profile", userHandler.Profile)       // 当前用户资料

		// 写接口 (Writes)，按用户限流
		writes := api.Group("")
		writes.Use(middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst))
		writes.POST("/article", storyHandler.Create)                // 发布文章
		writes.POST("/article/like", bookmarkHandler.ToggleArticle) // 收藏/取消收藏
		writes.POST("/author/follow", bookmarkHandler.ToggleAuthor) // 关注/取消关注
		writes.POST("/article/thumbsup", voteHandler.ThumbsUp)      // 点赞
		writes.POST("/article/comment", storyHandler.CreateComment) // 评论/回复
	}
}
