// Package bootstrap turns a config.Config into connected backends.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"clubhub/internal/config"
	"clubhub/internal/posters"
	"clubhub/internal/store"
	"clubhub/internal/store/mongostore"
	"clubhub/internal/store/sqlstore"
)

// OpenStore connects the configured store driver and prepares its schema.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case config.StoreMongo:
		st, err = openMongo(ctx, cfg)
	case config.StorePostgres:
		st, err = openSQL(ctx, sqlstore.DriverPostgres, cfg.DatabaseURL)
	case config.StoreSQLite:
		st, err = openSQL(ctx, sqlstore.DriverSQLite, cfg.DatabaseURL)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func openMongo(ctx context.Context, cfg config.Config) (store.Store, error) {
	st, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func openSQL(ctx context.Context, driver, dsn string) (store.Store, error) {
	st, err := sqlstore.Open(ctx, sqlstore.Config{Driver: driver, DSN: dsn})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// OpenPosters builds the poster backend. The handler is non-nil only for
// the local backend, which serves its own files under /uploads/.
func OpenPosters(ctx context.Context, cfg config.Config) (posters.Store, http.Handler, error) {
	switch cfg.PosterBackend {
	case config.PostersLocal:
		local, err := posters.NewLocal(cfg.UploadsDir)
		if err != nil {
			return nil, nil, err
		}
		return local, local.Handler(), nil
	case config.PostersS3:
		s3, err := posters.NewS3(ctx, posters.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown poster backend %q", cfg.PosterBackend)
	}
}
