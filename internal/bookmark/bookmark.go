// Package bookmark defines the core domain type for directory bookmarks.
package bookmark

import (
	"errors"
	"fmt"
	"os"
)

// Bookmark maps a short user-chosen key to a filesystem path.
// Keys and names are free-form text; only key uniqueness is enforced.
type Bookmark struct {
	Name string `json:"name" yaml:"name"` // Human-readable label, not unique
	Path string `json:"path" yaml:"path"` // Stored as given; never normalized
	Key  string `json:"key" yaml:"key"`   // Unique within a collection
	Uses uint   `json:"uses" yaml:"uses"` // Incremented on every visit
}

// Lookup errors.
var (
	ErrDuplicateKey = errors.New("bookmark with this key already exists")
	ErrNotFound     = errors.New("bookmark not found")
)

// Tag returns the bracketed key, "[key]".
func (b Bookmark) Tag() string {
	return "[" + b.Key + "]"
}

// Label returns the compact "[key]name" form used by short listings.
func (b Bookmark) Label() string {
	return b.Tag() + b.Name
}

// LongLabel returns every field on one line.
func (b Bookmark) LongLabel() string {
	return fmt.Sprintf("%s %s (%d uses) - %s", b.Tag(), b.Name, b.Uses, b.Path)
}

// PathExists reports whether path currently exists on disk.
// Any stat error other than a clean "exists" counts as missing.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
