package cmd

import (
	"context"

	"github.com/nijaru/video-api/config"
	"github.com/nijaru/video-api/migrations"
	"github.com/nijaru/video-api/repository"
	"github.com/nijaru/video-api/repository/postgres"
	"github.com/nijaru/video-api/repository/sqlite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// openStore connects the configured backend and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.VideoRepository, error) {
	db := cfg.Database

	switch db.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, db.Path, sqlite.DBConfig{
			BusyTimeout:        db.BusyTimeout,
			MaxConnections:     db.MaxConnections,
			MaxIdleConnections: db.MaxIdleConnections,
			ConnMaxLifetime:    db.ConnMaxLifetime,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite store")
		}
		logger.WithField("path", db.Path).Info("Using SQLite store")
		return repo, nil

	case config.DriverPostgres:
		if err := migrations.Up(migrations.DriverPostgres, db.URL); err != nil {
			return nil, err
		}

		poolCfg := postgres.DefaultPoolConfig()
		if db.MaxConnections > 0 {
			poolCfg.MaxConns = int32(db.MaxConnections)
		}
		if db.ConnMaxLifetime > 0 {
			poolCfg.MaxConnLifetime = db.ConnMaxLifetime
		}

		pool, err := postgres.NewPool(ctx, db.URL, poolCfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open postgres store")
		}
		logger.Info("Using PostgreSQL store")
		return postgres.NewRepository(pool), nil

	default:
		return nil, errors.Errorf("unsupported database driver %q", db.Driver)
	}
}
