package repository

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL for the members, posts and export_jobs tables.
func Schema() string {
	return schema
}

// ApplySchema creates missing tables and indexes. Statements are idempotent.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
