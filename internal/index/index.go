// Package index mirrors uploaded media as relational rows so deletes can
// cascade through both the object store and the database. The object
// store stays the source of truth; the index is advisory.
package index

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Index records which media keys live in which folder.
type Index interface {
	AddImage(ctx context.Context, key, folder string) error
	DeleteImage(ctx context.Context, key, folder string) error
	DeleteFolder(ctx context.Context, folder string) error
	RenameFolder(ctx context.Context, oldFolder, newFolder string) error
	Close() error
}

// Noop is the index used when no database is configured.
type Noop struct{}

func (Noop) AddImage(context.Context, string, string) error     { return nil }
func (Noop) DeleteImage(context.Context, string, string) error  { return nil }
func (Noop) DeleteFolder(context.Context, string) error         { return nil }
func (Noop) RenameFolder(context.Context, string, string) error { return nil }
func (Noop) Close() error                                       { return nil }

// Postgres implements Index on a single images table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens the database, verifies the connection and ensures the
// images table exists.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	p := &Postgres{db: db}
	if err := p.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS images (
			key    TEXT NOT NULL,
			folder TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (key, folder)
		)`
	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("ensure images table: %w", err)
	}
	return nil
}

func (p *Postgres) AddImage(ctx context.Context, key, folder string) error {
	const query = `
		INSERT INTO images (key, folder) VALUES ($1, $2)
		ON CONFLICT (key, folder) DO NOTHING`
	_, err := p.db.ExecContext(ctx, query, key, folder)
	return err
}

func (p *Postgres) DeleteImage(ctx context.Context, key, folder string) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM images WHERE key = $1 AND folder = $2`, key, folder)
	return err
}

func (p *Postgres) DeleteFolder(ctx context.Context, folder string) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM images WHERE folder = $1`, folder)
	return err
}

func (p *Postgres) RenameFolder(ctx context.Context, oldFolder, newFolder string) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE images SET folder = $2 WHERE folder = $1`, oldFolder, newFolder)
	return err
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
