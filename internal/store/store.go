// Package store implements the bookmark collection and its operations.
//
// A Store is loaded in full from one JSON file, changed in memory, and
// written back in full after every successful mutation. There is no locking:
// two processes saving at once means the last writer wins.
package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/gobwas/glob"
	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/matsen/bookmarker/internal/config"
	"github.com/matsen/bookmarker/internal/logging"
	"github.com/matsen/bookmarker/internal/storage"
)

// Store is the in-memory bookmark collection bound to its file.
type Store struct {
	path      string
	bookmarks []bookmark.Bookmark
}

// Open loads the collection at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	bookmarks, err := storage.ReadAll(path)
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %d bookmarks from %s", len(bookmarks), path)
	return &Store{path: path, bookmarks: bookmarks}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.bookmarks)
}

// Bookmarks returns a copy of the collection in insertion order.
func (s *Store) Bookmarks() []bookmark.Bookmark {
	out := make([]bookmark.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// Save writes the whole collection back to its file.
func (s *Store) Save() error {
	if err := storage.WriteAll(s.path, s.bookmarks); err != nil {
		return err
	}
	logging.Debugf("saved %d bookmarks to %s", len(s.bookmarks), s.path)
	return nil
}

// Add appends a new bookmark with zero uses and saves.
// Key and name are taken as given; only a duplicate key is refused.
// The path is stored exactly as given. Callers that want the working
// directory as default must resolve it before calling.
func (s *Store) Add(key, name, path string) (bookmark.Bookmark, error) {
	if _, found := storage.FindByKey(s.bookmarks, key); found {
		return bookmark.Bookmark{}, fmt.Errorf("%w: %q", bookmark.ErrDuplicateKey, key)
	}

	b := bookmark.Bookmark{Name: name, Path: path, Key: key}
	s.bookmarks = append(s.bookmarks, b)
	if err := s.Save(); err != nil {
		s.bookmarks = s.bookmarks[:len(s.bookmarks)-1]
		return bookmark.Bookmark{}, err
	}
	return b, nil
}

// Remove deletes every bookmark with the given key and returns how many
// were removed. The file is only rewritten when something changed.
func (s *Store) Remove(key string) (int, error) {
	kept := make([]bookmark.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if b.Key != key {
			kept = append(kept, b)
		}
	}

	removed := len(s.bookmarks) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.bookmarks
	s.bookmarks = kept
	if err := s.Save(); err != nil {
		s.bookmarks = prev
		return 0, err
	}
	return removed, nil
}

// Touch records a visit: the bookmark's use count goes up by one and the
// collection is saved. Returns the updated bookmark, or ErrNotFound without
// saving.
func (s *Store) Touch(key string) (bookmark.Bookmark, error) {
	idx, found := storage.FindByKey(s.bookmarks, key)
	if !found {
		return bookmark.Bookmark{}, fmt.Errorf("%w: %q", bookmark.ErrNotFound, key)
	}

	s.bookmarks[idx].Uses++
	if err := s.Save(); err != nil {
		s.bookmarks[idx].Uses--
		return bookmark.Bookmark{}, err
	}
	return s.bookmarks[idx], nil
}

// Top returns up to n bookmarks ordered by descending use count.
// Equal counts keep their insertion order. n <= 0 returns all of them.
func (s *Store) Top(n int) []bookmark.Bookmark {
	sorted := s.Bookmarks()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Uses > sorted[j].Uses
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Filter returns the bookmarks whose key or name matches a glob pattern,
// in insertion order.
func (s *Store) Filter(pattern string) ([]bookmark.Bookmark, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matched []bookmark.Bookmark
	for _, b := range s.bookmarks {
		if g.Match(b.Key) || g.Match(b.Name) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// Clean removes every bookmark whose path fails exists and returns the
// removed ones in their original order. The file is only rewritten when
// something was removed. A nil exists uses bookmark.PathExists.
func (s *Store) Clean(exists func(string) bool) ([]bookmark.Bookmark, error) {
	stale, kept := s.partition(exists)
	if len(stale) == 0 {
		return nil, nil
	}

	prev := s.bookmarks
	s.bookmarks = kept
	if err := s.Save(); err != nil {
		s.bookmarks = prev
		return nil, err
	}
	logging.Infof("removed %d stale bookmarks from %s", len(stale), s.path)
	return stale, nil
}

// Stale reports which bookmarks Clean would remove, without changing anything.
func (s *Store) Stale(exists func(string) bool) []bookmark.Bookmark {
	stale, _ := s.partition(exists)
	return stale
}

func (s *Store) partition(exists func(string) bool) (stale, kept []bookmark.Bookmark) {
	if exists == nil {
		exists = bookmark.PathExists
	}
	kept = make([]bookmark.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if exists(b.Path) {
			kept = append(kept, b)
			continue
		}
		logging.Debugf("stale bookmark %s", b.LongLabel())
		stale = append(stale, b)
	}
	return stale, kept
}

// Purge deletes the store file at path together with its search index.
// Returns false when there was no store file. Nothing is backed up.
func Purge(path string) (bool, error) {
	removed, err := storage.Remove(path)
	if err != nil {
		return false, err
	}

	indexPath := config.IndexPath(path)
	if err := os.Remove(indexPath); err != nil && !os.IsNotExist(err) {
		logging.Warnf("could not delete search index %s: %v", indexPath, err)
	}
	if removed {
		logging.Infof("deleted %s", path)
	}
	return removed, nil
}
