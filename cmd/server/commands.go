package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedthread/internal/cache"
	"feedthread/internal/config"
	"feedthread/internal/db"
	"feedthread/internal/logger"
	"feedthread/internal/middleware"
	"feedthread/internal/router"
	"feedthread/internal/services"
	"feedthread/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "feedthread",
		Short:         "Content feed backend: likes, follows, thumbs-ups and comment threads",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "config", ".env", "path to an env file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	})

	var demo bool
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the label catalog and, with --demo, sample users and articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), envFile, demo)
		},
	}
	seed.Flags().BoolVar(&demo, "demo", false, "also create demo users and articles")
	root.AddCommand(seed)

	return root
}

// app bundles everything built from the config.
type app struct {
	cfg      *config.Config
	store    store.Store
	deps     router.Deps
	labels   *services.LabelService
	articles *services.ArticleService
}

func bootstrap(ctx context.Context, envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	if !cfg.EnvFileLoaded {
		logger.Info("no env file found, reading configuration from the environment", zap.String("file", envFile))
	}

	st, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := newCache(ctx, cfg)
	projector := services.NewProjector(st, c, services.ProjectorOptions{
		AllLabel:        cfg.AllLabel,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		ListCacheTTL:    cfg.ListCacheTTL,
	})
	labels := services.NewLabelService(st, c, cfg.ListCacheTTL)
	articles := services.NewArticleService(st, projector)

	return &app{
		cfg:      cfg,
		store:    st,
		labels:   labels,
		articles: articles,
		deps: router.Deps{
			Interests:        services.NewInterestService(st),
			Thumbs:           services.NewThumbsService(st, projector),
			Thread:           services.NewThreadService(st),
			Projector:        projector,
			Articles:         articles,
			Labels:           labels,
			DefaultArticleID: cfg.DefaultArticleID,
			RateLimitRPS:     cfg.RateLimitRPS,
			RateLimitBurst:   cfg.RateLimitBurst,
		},
	}, nil
}

// newCache prefers Redis when configured and reachable, else the LRU.
func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		r, err := cache.DialRedis(pingCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			logger.Info("using redis cache", zap.String("addr", cfg.RedisAddr))
			return r
		}
		logger.Warn("redis unavailable, falling back to in-process cache", zap.Error(err))
	}
	l, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		logger.Warn("failed to create LRU cache, caching disabled", zap.Error(err))
		return cache.Nop{}
	}
	return l
}

func runServe(ctx context.Context, envFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(ctx, envFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.store.Close(context.Background())

	if err := db.SeedLabels(ctx, a.labels, a.cfg.AllLabel); err != nil {
		return err
	}

	gin.SetMode(a.cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics())

	// Setup Sessions
	cookieStore := cookie.NewStore([]byte(a.cfg.SessionSecret))
	r.Use(sessions.Sessions("feedthread_session", cookieStore))

	router.RegisterRoutes(r, a.deps)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("feedthread server starting", zap.String("addr", srv.Addr), zap.String("store", a.cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context, envFile string, demo bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(ctx, envFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.store.Close(context.Background())

	if err := db.SeedLabels(ctx, a.labels, a.cfg.AllLabel); err != nil {
		return err
	}
	if !demo {
		return nil
	}
	labels, err := a.labels.Labels(ctx)
	if err != nil {
		return err
	}
	return db.SeedDemo(ctx, a.store, a.articles, labels, a.cfg.AllLabel)
}
