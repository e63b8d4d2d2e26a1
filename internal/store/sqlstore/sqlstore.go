// Package sqlstore is the relational backend: gorm over PostgreSQL (pgx) or
// SQLite, with the schema managed by goose migrations.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"time"

	"clubhub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Config struct {
	Driver string
	DSN    string
	LogSQL bool
}

type Store struct {
	DB *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects, applies pending migrations and returns the store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var (
		dialector gorm.Dialector
		dialect   goose.Dialect
	)
	switch cfg.Driver {
	case DriverPostgres:
		pgcfg, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgcfg)})
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	lvl := logger.Silent
	if cfg.LogSQL {
		lvl = logger.Info
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(log.Writer(), "", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	if err := migrate(ctx, gdb, dialect); err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		// SQLite allows one writer at a time.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return New(gdb), nil
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

func migrate(ctx context.Context, gdb *gorm.DB, dialect goose.Dialect) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Users() store.UserStore   { return &UserStore{db: s.DB} }
func (s *Store) Events() store.EventStore { return &EventStore{db: s.DB} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
