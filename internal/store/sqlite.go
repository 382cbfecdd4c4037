// Package store provides the SQLite-backed persistence for codes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS codes (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL DEFAULT '',
	destination   TEXT NOT NULL DEFAULT 'product',
	product_id    TEXT NOT NULL DEFAULT '',
	variant_id    TEXT NOT NULL DEFAULT '',
	handle        TEXT NOT NULL DEFAULT '',
	product_title TEXT NOT NULL DEFAULT '',
	image_url     TEXT NOT NULL DEFAULT '',
	image_alt     TEXT NOT NULL DEFAULT '',
	fg_hex        TEXT NOT NULL DEFAULT '',
	bg_hex        TEXT NOT NULL DEFAULT '',
	scans         INTEGER NOT NULL DEFAULT 0,
	image_path    TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_codes_created ON codes(created_at);
`

// DB wraps a sql.DB with code-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

const codeColumns = `id, title, destination, product_id, variant_id, handle,
	product_title, image_url, image_alt, fg_hex, bg_hex, scans, image_path,
	created_at, updated_at`

func scanCode(row interface{ Scan(...any) error }) (*models.Code, error) {
	var c models.Code
	err := row.Scan(
		&c.ID, &c.Title, &c.Destination,
		&c.Product.ID, &c.Product.VariantID, &c.Product.Handle,
		&c.Product.Title, &c.Product.ImageURL, &c.Product.ImageAlt,
		&c.FgHex, &c.BgHex, &c.Scans, &c.ImagePath,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every code in creation order. Creation order is the
// projector's tie-break order, so it must be deterministic.
func (db *DB) List(ctx context.Context) ([]models.Code, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+codeColumns+` FROM codes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []models.Code
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Get returns one code by id.
func (db *DB) Get(ctx context.Context, id string) (*models.Code, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+codeColumns+` FROM codes WHERE id = ?`, id)
	c, err := scanCode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}
	return c, nil
}

// Create inserts a new code, assigning its id and timestamps.
func (db *DB) Create(ctx context.Context, c models.Code) (*models.Code, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Scans = 0

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO codes (id, title, destination, product_id, variant_id, handle,
			product_title, image_url, image_alt, fg_hex, bg_hex, scans, image_path,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, '', ?, ?)
	`, c.ID, c.Title, c.Destination,
		c.Product.ID, c.Product.VariantID, c.Product.Handle,
		c.Product.Title, c.Product.ImageURL, c.Product.ImageAlt,
		c.FgHex, c.BgHex, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create: %w", err)
	}
	return &c, nil
}

// Update rewrites the editable fields of an existing code. Scans, image
// path, and created_at are server-maintained and left untouched.
func (db *DB) Update(ctx context.Context, c models.Code) (*models.Code, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE codes SET
			title = ?, destination = ?,
			product_id = ?, variant_id = ?, handle = ?,
			product_title = ?, image_url = ?, image_alt = ?,
			fg_hex = ?, bg_hex = ?, updated_at = ?
		WHERE id = ?
	`, c.Title, c.Destination,
		c.Product.ID, c.Product.VariantID, c.Product.Handle,
		c.Product.Title, c.Product.ImageURL, c.Product.ImageAlt,
		c.FgHex, c.BgHex, time.Now().UTC(), c.ID)
	if err != nil {
		return nil, fmt.Errorf("store: update %s: %w", c.ID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, apperr.ErrNotFound
	}
	return db.Get(ctx, c.ID)
}

// Delete removes a code.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// RecordScan increments the scan counter and returns the new count.
func (db *DB) RecordScan(ctx context.Context, id string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `UPDATE codes SET scans = scans + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("store: record scan %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, apperr.ErrNotFound
	}
	var scans int64
	if err := db.conn.QueryRowContext(ctx, `SELECT scans FROM codes WHERE id = ?`, id).Scan(&scans); err != nil {
		return 0, fmt.Errorf("store: read scans %s: %w", id, err)
	}
	return scans, nil
}

// SetImagePath links a rendered image file to a code.
func (db *DB) SetImagePath(ctx context.Context, id, path string) error {
	res, err := db.conn.ExecContext(ctx, `UPDATE codes SET image_path = ? WHERE id = ?`, path, id)
	if err != nil {
		return fmt.Errorf("store: set image path %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ClearImagePath removes the image link for a code.
func (db *DB) ClearImagePath(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `UPDATE codes SET image_path = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: clear image path %s: %w", id, err)
	}
	return nil
}
