package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/matsen/bookmarker/internal/bookmark"
	_ "modernc.org/sqlite"
)

// Index is a disposable SQLite full-text index over the bookmark file.
// The JSON file stays the source of truth; the index is rebuilt whenever
// the file's hash changes.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database at the given path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createIndexSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func createIndexSchema(db *sql.DB) error {
	schema := `
		-- position is the record's place in the JSON array; keys are only
		-- unique by convention, so they can't be the primary key here
		CREATE TABLE IF NOT EXISTS bookmarks (
			position INTEGER PRIMARY KEY,
			key TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			uses INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_key ON bookmarks(key);

		CREATE VIRTUAL TABLE IF NOT EXISTS bookmarks_fts USING fts5(
			key,
			name,
			path
		);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// NeedsSync reports whether the index is out of date with respect to the JSON file.
func (x *Index) NeedsSync(jsonPath string) (bool, error) {
	currentHash, err := ComputeHash(jsonPath)
	if err != nil {
		return true, err
	}

	storedHash, err := x.getMeta("json_hash")
	if err != nil {
		return true, err
	}

	return currentHash != storedHash, nil
}

// Sync clears the index and rebuilds it from the JSON file.
// Returns the number of bookmarks indexed.
func (x *Index) Sync(jsonPath string) (int, error) {
	bookmarks, err := ReadAll(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("reading bookmarks: %w", err)
	}

	hash, err := ComputeHash(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	tx, err := x.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return 0, fmt.Errorf("clearing bookmarks table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bookmarks_fts"); err != nil {
		return 0, fmt.Errorf("clearing bookmarks_fts table: %w", err)
	}

	rowStmt, err := tx.Prepare(`INSERT INTO bookmarks (position, key, name, path, uses) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing bookmarks insert: %w", err)
	}
	defer rowStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO bookmarks_fts (rowid, key, name, path) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, b := range bookmarks {
		if _, err := rowStmt.Exec(i, b.Key, b.Name, b.Path, b.Uses); err != nil {
			return 0, fmt.Errorf("inserting bookmark %s: %w", b.Key, err)
		}
		if _, err := ftsStmt.Exec(i, b.Key, b.Name, b.Path); err != nil {
			return 0, fmt.Errorf("inserting bookmarks_fts for %s: %w", b.Key, err)
		}
	}

	if err := setMeta(tx, "json_hash", hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if err := setMeta(tx, "last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}

	return len(bookmarks), nil
}

// Search runs a full-text query over key, name and path.
// Results are ordered by descending use count, then collection order.
func (x *Index) Search(query string, limit int) ([]bookmark.Bookmark, error) {
	ftsQuery := PrepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := x.db.Query(`
		SELECT b.key, b.name, b.path, b.uses
		FROM bookmarks_fts
		JOIN bookmarks b ON b.position = bookmarks_fts.rowid
		WHERE bookmarks_fts MATCH ?
		ORDER BY b.uses DESC, b.position
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var results []bookmark.Bookmark
	for rows.Next() {
		var b bookmark.Bookmark
		var uses int64
		if err := rows.Scan(&b.Key, &b.Name, &b.Path, &uses); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		b.Uses = uint(uses)
		results = append(results, b)
	}

	return results, rows.Err()
}

// Count returns the number of indexed bookmarks.
func (x *Index) Count() (int, error) {
	var n int
	if err := x.db.QueryRow("SELECT COUNT(*) FROM bookmarks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bookmarks: %w", err)
	}
	return n, nil
}

// LastSync returns when the index was last rebuilt, or the zero time if never.
func (x *Index) LastSync() (time.Time, error) {
	value, err := x.getMeta("last_sync")
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

func (x *Index) getMeta(key string) (string, error) {
	var value sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// PrepareFTSQuery turns free text into an FTS5 query.
// Every word becomes a quoted prefix term, so "proj src" matches
// "projects/src" and punctuation never reaches the FTS5 parser.
func PrepareFTSQuery(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return ""
	}

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if strings.IndexFunc(w, isWordRune) < 0 {
			continue // pure punctuation has no tokens to match
		}
		w = strings.ReplaceAll(w, "\"", "\"\"")
		terms = append(terms, "\""+w+"\"*")
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
