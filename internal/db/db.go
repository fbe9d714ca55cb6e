package db

import (
	"context"
	"fmt"

	"feedthread/internal/config"
	"feedthread/internal/logger"
	"feedthread/internal/store"
	"feedthread/internal/store/mongostore"
	"feedthread/internal/store/sqlstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects the backend selected by STORE_DRIVER. SQL backends are
// migrated on open; MongoDB gets its list index.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.StoreDriver {
	case "postgres":
		s, err := sqlstore.OpenPostgres(cfg.DatabaseURL, gcfg)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established", zap.String("driver", "postgres"))
		return s, nil

	case "sqlite":
		s, err := sqlstore.OpenSQLite(cfg.DatabaseURL, gcfg)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established", zap.String("driver", "sqlite"), zap.String("file", cfg.DatabaseURL))
		return s, nil

	case "mongo":
		s, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to create mongo indexes", zap.Error(err))
		}
		logger.Info("database connection established", zap.String("driver", "mongo"), zap.String("db", cfg.MongoDB))
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
