package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds the gorm handle for the configured driver and applies the pool
// settings. It does not check that the database is reachable.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLiteDSN())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	logLevel := gormlogger.Silent
	if cfg.GinMode == "debug" {
		logLevel = gormlogger.Warn
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(logLevel),
		TranslateError:         true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return database, nil
}

// ConnectWithRetry opens the database and pings it until it answers, the
// attempts configured in cfg run out, or ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		var database *gorm.DB
		database, err = Open(cfg)
		if err == nil {
			err = ping(ctx, database)
			if err == nil {
				log.Info().
					Str("driver", cfg.DBDriver).
					Int("attempt", attempt).
					Msg("database connected")
				return database, nil
			}
			closeQuietly(database)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", cfg.DBConnectAttempts).
			Msg("db not ready")

		if attempt == cfg.DBConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectAttempts, err)
}

// Migrate creates or updates the authors and books tables.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(&model.Author{}, &model.Book{})
}

func ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(pingCtx)
}

func closeQuietly(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
