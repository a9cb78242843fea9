package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Entry is one archived artifact as recorded in the index.
type Entry struct {
	// Name is the artifact file name.
	Name string `json:"name"`

	// Class is the artifact's log class.
	Class string `json:"class"`

	// RotatedAt is when the artifact was rotated.
	RotatedAt time.Time `json:"rotated_at"`

	// ArchivedAt is when the cleanup pass moved it into the archive.
	ArchivedAt time.Time `json:"archived_at"`

	// Size is the artifact size in bytes.
	Size int64 `json:"size"`

	// ArchivePath is where the artifact now lives.
	ArchivePath string `json:"archive_path"`
}

// Index is the SQLite-backed record of archived artifacts. It exists so
// operators can answer "where did that audit log go" without walking the
// archive directory; the artifacts themselves stay plain files.
type Index struct {
	db *sql.DB

	insertStmt *sql.Stmt
	listStmt   *sql.Stmt
	countStmt  *sql.Stmt
}

// OpenIndex opens (creating if needed) the archive index at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("index path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive index: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	idx := &Index{db: db}

	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}
	if err := idx.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare index statements: %w", err)
	}

	return idx, nil
}

// initSchema creates the index schema if it doesn't exist.
func (i *Index) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS archived_artifacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		class TEXT NOT NULL,
		rotated_at INTEGER NOT NULL,
		archived_at INTEGER NOT NULL,
		size INTEGER NOT NULL,
		archive_path TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_archived_class ON archived_artifacts(class);
	CREATE INDEX IF NOT EXISTS idx_archived_at ON archived_artifacts(archived_at);
	`

	_, err := i.db.Exec(schema)
	return err
}

// prepareStatements pre-compiles the statements used on every cleanup pass.
func (i *Index) prepareStatements() error {
	var err error

	i.insertStmt, err = i.db.Prepare(`
		INSERT INTO archived_artifacts (name, class, rotated_at, archived_at, size, archive_path)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	i.listStmt, err = i.db.Prepare(`
		SELECT name, class, rotated_at, archived_at, size, archive_path
		FROM archived_artifacts
		WHERE (? = '' OR class = ?)
		ORDER BY archived_at DESC
		LIMIT ?`)
	if err != nil {
		return err
	}

	i.countStmt, err = i.db.Prepare(`SELECT COUNT(*) FROM archived_artifacts`)
	return err
}

// Record inserts one archived artifact into the index.
func (i *Index) Record(ctx context.Context, entry Entry) error {
	_, err := i.insertStmt.ExecContext(ctx,
		entry.Name,
		entry.Class,
		entry.RotatedAt.Unix(),
		entry.ArchivedAt.Unix(),
		entry.Size,
		entry.ArchivePath,
	)
	if err != nil {
		return fmt.Errorf("failed to record archived artifact %q: %w", entry.Name, err)
	}
	return nil
}

// List returns archived artifacts, most recently archived first. An empty
// class matches all classes; limit <= 0 means a default of 100.
func (i *Index) List(ctx context.Context, class string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := i.listStmt.QueryContext(ctx, class, class, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var rotatedAt, archivedAt int64
		if err := rows.Scan(&e.Name, &e.Class, &rotatedAt, &archivedAt, &e.Size, &e.ArchivePath); err != nil {
			return nil, fmt.Errorf("failed to scan archive entry: %w", err)
		}
		e.RotatedAt = time.Unix(rotatedAt, 0).UTC()
		e.ArchivedAt = time.Unix(archivedAt, 0).UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the total number of archived artifacts in the index.
func (i *Index) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := i.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archive entries: %w", err)
	}
	return count, nil
}

// Close closes the index database.
func (i *Index) Close() error {
	for _, stmt := range []*sql.Stmt{i.insertStmt, i.listStmt, i.countStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return i.db.Close()
}
