// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
)

// Dialects.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Store implements featurestore.Store on gorm.
type Store struct {
	db      *gorm.DB
	dialect string
}

var _ featurestore.Store = (*Store)(nil)

// Open connects with the postgres or sqlite driver and migrates the schema.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case Postgres:
		if cfg.DSN == "" {
			return nil, errors.New("postgres driver requires database.dsn")
		}
		dialector = postgres.Open(cfg.DSN)
	case SQLite:
		path := cfg.Path
		if path == "" || path == ":memory:" {
			path = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	s, err := New(db, cfg.Driver)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open gorm connection. dialect selects the numeric merge SQL.
func New(db *gorm.DB, dialect string) (*Store, error) {
	if dialect != Postgres && dialect != SQLite {
		return nil, fmt.Errorf("gormstore: unsupported dialect %q", dialect)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gormstore: underlying connection: %w", err)
	}
	if dialect == SQLite {
		// One writer; also keeps a shared in-memory database alive.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(16)
		sqlDB.SetMaxIdleConns(4)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Migrate creates or updates both tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&propertyRow{}, &preferenceRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Backend implements featurestore.Store.
func (s *Store) Backend() string { return s.dialect }

// Ping implements featurestore.Store.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return featurestore.Unavailable("ping", err)
	}
	return classify("ping", sqlDB.PingContext(ctx))
}

// Close implements featurestore.Store.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// classify maps gorm errors onto the featurestore taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return featurestore.NotFound(op, "%v", err)
	}
	return featurestore.Unavailable(op, err)
}

// numericExpr returns SQL yielding col as a double, or NULL when col is not
// a plain decimal number. The result carries no '?' so it can be embedded
// in gorm expressions that bind variables.
func (s *Store) numericExpr(col string) string {
	if s.dialect == Postgres {
		return `(CASE WHEN ` + col + ` ~ '^\s*-{0,1}[0-9]+(\.[0-9]+){0,1}\s*$' THEN CAST(` + col + ` AS DOUBLE PRECISION) END)`
	}
	return `(CASE WHEN trim(` + col + `) <> '' AND trim(` + col + `) NOT GLOB '*[^0-9.-]*' THEN CAST(trim(` + col + `) AS REAL) END)`
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
