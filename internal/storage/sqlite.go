package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doctags/doctags-mcp/pkg/types"
)

// SQLiteCatalog implements the Catalog interface using SQLite
type SQLiteCatalog struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteCatalog creates a new SQLite-backed tag catalog
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

// Close closes the database connection
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

// ReplaceTags atomically replaces one target's tags
func (c *SQLiteCatalog) ReplaceTags(ctx context.Context, rootPath, lang string, tags types.TagList) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rootID, err := upsertRoot(ctx, tx, rootPath)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tags WHERE root_id = ? AND lang = ?", rootID, lang); err != nil {
		return fmt.Errorf("failed to clear stale tags: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO tags (root_id, lang, name, file, locator) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, tag := range tags {
		if _, err := stmt.ExecContext(ctx, rootID, lang, tag.Name, tag.File, tag.Locator); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE roots SET last_generated_at = ?, updated_at = ? WHERE id = ?",
		time.Now(), time.Now(), rootID); err != nil {
		return fmt.Errorf("failed to touch root: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// upsertRoot finds or creates the root record and returns its id
func upsertRoot(ctx context.Context, tx *sql.Tx, rootPath string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM roots WHERE path = ?", rootPath).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up root: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"INSERT INTO roots (path, created_at, updated_at) VALUES (?, ?, ?)",
		rootPath, time.Now(), time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create root: %w", err)
	}
	return result.LastInsertId()
}

// LookupTag finds cataloged tags by name
func (c *SQLiteCatalog) LookupTag(ctx context.Context, name string, prefix bool, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `
		SELECT t.id, r.path, t.lang, t.name, t.file, t.locator
		FROM tags t JOIN roots r ON r.id = t.root_id
		WHERE t.name = ?
		ORDER BY t.name, r.path
		LIMIT ?
	`
	arg := name
	if prefix {
		query = `
			SELECT t.id, r.path, t.lang, t.name, t.file, t.locator
			FROM tags t JOIN roots r ON r.id = t.root_id
			WHERE t.name LIKE ? ESCAPE '\'
			ORDER BY t.name, r.path
			LIMIT ?
		`
		arg = escapeLike(name) + "%"
	}

	rows, err := c.db.QueryContext(ctx, query, arg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.RootPath, &e.Lang, &e.Name, &e.File, &e.Locator); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// escapeLike escapes LIKE metacharacters in a user-supplied prefix
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// GetRoot returns catalog state for one documentation root
func (c *SQLiteCatalog) GetRoot(ctx context.Context, rootPath string) (*Root, error) {
	root := &Root{}
	var lastGenerated sql.NullTime
	err := c.db.QueryRowContext(ctx, `
		SELECT id, path, last_generated_at, created_at, updated_at
		FROM roots WHERE path = ?`, rootPath).
		Scan(&root.ID, &root.Path, &lastGenerated, &root.CreatedAt, &root.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get root: %w", err)
	}
	if lastGenerated.Valid {
		root.LastGeneratedAt = lastGenerated.Time
	}

	if err := c.fillRootStats(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

// ListRoots returns every cataloged root ordered by path
func (c *SQLiteCatalog) ListRoots(ctx context.Context) ([]*Root, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, path, last_generated_at, created_at, updated_at
		FROM roots ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roots []*Root
	for rows.Next() {
		root := &Root{}
		var lastGenerated sql.NullTime
		if err := rows.Scan(&root.ID, &root.Path, &lastGenerated, &root.CreatedAt, &root.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		if lastGenerated.Valid {
			root.LastGeneratedAt = lastGenerated.Time
		}
		roots = append(roots, root)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, root := range roots {
		if err := c.fillRootStats(ctx, root); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// fillRootStats loads the tag count and language list for a root
func (c *SQLiteCatalog) fillRootStats(ctx context.Context, root *Root) error {
	if err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tags WHERE root_id = ?", root.ID).Scan(&root.TagCount); err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		"SELECT DISTINCT lang FROM tags WHERE root_id = ? AND lang != '' ORDER BY lang", root.ID)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	root.Languages = nil
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return fmt.Errorf("failed to scan language: %w", err)
		}
		root.Languages = append(root.Languages, lang)
	}
	return rows.Err()
}
