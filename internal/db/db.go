package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/sparkify/etl/config"
)

const (
	defaultDBDriver     = "postgres"
	defaultPingTimeout  = 5 * time.Second
	defaultConnMaxIdle  = 2 * time.Minute
	defaultConnMaxLife  = 30 * time.Minute
	defaultMaxIdleConns = 2
	defaultMaxOpenConns = 4
)

// Open connects to the configured ETL database and verifies the connection.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return open(ctx, cfg.Database, cfg.Database.DBName)
}

// OpenDefault connects to the maintenance database used to create or drop
// the ETL database.
func OpenDefault(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return open(ctx, cfg.Database, cfg.Database.DefaultDBName)
}

// URL builds the postgres connection URL for the named database.
func URL(cfg config.DatabaseConfig, dbName string) string {
	sslmode := "disable"
	if cfg.UseSSL {
		sslmode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		User:   url.UserPassword(cfg.User, cfg.Password),
		Path:   dbName,
	}

	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()

	return u.String()
}

func open(ctx context.Context, cfg config.DatabaseConfig, dbName string) (*sql.DB, error) {
	db, err := sql.Open(defaultDBDriver, URL(cfg, dbName))
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(defaultConnMaxIdle)
	db.SetConnMaxLifetime(defaultConnMaxLife)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetMaxOpenConns(defaultMaxOpenConns)

	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dbName, err)
	}

	return db, nil
}
