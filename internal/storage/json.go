// Package storage handles bookmark persistence as a JSON file and a SQLite search index.
package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matsen/bookmarker/internal/bookmark"
)

// ErrMalformed is returned when the bookmarks file exists but does not hold
// a JSON array of complete bookmark records.
var ErrMalformed = errors.New("malformed bookmarks file")

// record mirrors bookmark.Bookmark with pointer fields so that absent or
// null fields can be told apart from zero values.
type record struct {
	Name *string `json:"name"`
	Path *string `json:"path"`
	Key  *string `json:"key"`
	Uses *uint   `json:"uses"`
}

// ReadAll reads the bookmark collection from a JSON file.
// A missing file yields an empty collection. An existing file must hold a
// JSON array whose elements carry every bookmark field; anything else,
// including an empty file or null, is ErrMalformed.
func ReadAll(path string) ([]bookmark.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file means no bookmarks yet
		}
		return nil, fmt.Errorf("reading bookmarks file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w %s: file is empty", ErrMalformed, path)
	}

	var records []*record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrMalformed, path, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w %s: expected an array, got null", ErrMalformed, path)
	}

	bookmarks := make([]bookmark.Bookmark, len(records))
	for i, r := range records {
		if r == nil || r.Name == nil || r.Path == nil || r.Key == nil || r.Uses == nil {
			return nil, fmt.Errorf("%w %s: record %d is missing a field (name, path, key, uses)", ErrMalformed, path, i)
		}
		bookmarks[i] = bookmark.Bookmark{Name: *r.Name, Path: *r.Path, Key: *r.Key, Uses: *r.Uses}
	}

	return bookmarks, nil
}

// WriteAll writes the whole collection as indented JSON, replacing existing content.
// Parent directories are created as needed. The data goes to a temporary file
// in the same directory which is then renamed over path.
func WriteAll(path string, bookmarks []bookmark.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []bookmark.Bookmark{}
	}

	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating bookmarks directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing bookmarks file: %w", err)
	}

	return nil
}

// Remove deletes the bookmarks file.
// Returns false (and no error) when there was nothing to delete.
func Remove(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting bookmarks file: %w", err)
	}
	return true, nil
}

// ComputeHash computes a SHA256 hash of a file's contents.
// A missing file hashes like an empty one.
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// FindByKey searches for a bookmark by key.
// Returns the index and true if found, -1 and false otherwise.
func FindByKey(bookmarks []bookmark.Bookmark, key string) (int, bool) {
	for i, b := range bookmarks {
		if b.Key == key {
			return i, true
		}
	}
	return -1, false
}
