package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Execer is the subset of *sql.DB used to run maintenance statements.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RecreateDatabase drops the named database if it exists and creates it
// again with UTF8 encoding. conn must point at a different database.
// Identifiers cannot be bound as parameters, so the name is quoted instead.
func RecreateDatabase(ctx context.Context, conn Execer, name string) error {
	quoted := pq.QuoteIdentifier(name)

	if _, err := conn.ExecContext(ctx, "DROP DATABASE IF EXISTS "+quoted); err != nil {
		return fmt.Errorf("drop database %s: %w", name, err)
	}
	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+quoted+" WITH ENCODING 'utf8' TEMPLATE template0"); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}
