package store

import (
	"fmt"
	"os"
	"time"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/matsen/bookmarker/internal/config"
	"github.com/matsen/bookmarker/internal/logging"
	"github.com/matsen/bookmarker/internal/storage"
)

// Info describes the store file and its search index.
type Info struct {
	Path      string    `json:"path"`
	IndexPath string    `json:"index_path"`
	Records   int       `json:"records"`
	TotalUses uint      `json:"total_uses"`
	FileSize  int64     `json:"file_size"`
	IndexSize int64     `json:"index_size"`
	Indexed   int       `json:"indexed"`
	LastSync  time.Time `json:"last_sync,omitempty"`
	InSync    bool      `json:"in_sync"`
	Error     string    `json:"error,omitempty"`
}

// IndexPath returns the search index file that belongs to this store.
func (s *Store) IndexPath() string {
	return config.IndexPath(s.path)
}

// Info gathers file sizes, totals and index freshness.
// Index problems are reported in Info.Error rather than failing.
func (s *Store) Info() *Info {
	info := &Info{
		Path:      s.path,
		IndexPath: s.IndexPath(),
		Records:   len(s.bookmarks),
	}
	for _, b := range s.bookmarks {
		info.TotalUses += b.Uses
	}

	if st, err := os.Stat(s.path); err == nil {
		info.FileSize = st.Size()
	}
	st, err := os.Stat(info.IndexPath)
	if err != nil {
		return info // no index built yet
	}
	info.IndexSize = st.Size()

	idx, err := storage.OpenIndex(info.IndexPath)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	defer idx.Close()

	needs, err := idx.NeedsSync(s.path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.InSync = !needs
	if info.Indexed, err = idx.Count(); err != nil {
		info.Error = err.Error()
		return info
	}
	if info.LastSync, err = idx.LastSync(); err != nil {
		info.Error = err.Error()
	}
	return info
}

// Reindex rebuilds the search index. Without force it only rebuilds when
// the store file changed since the last sync. Returns the number of
// bookmarks indexed, or -1 when the index was already current.
func (s *Store) Reindex(force bool) (int, error) {
	idx, err := storage.OpenIndex(s.IndexPath())
	if err != nil {
		return 0, err
	}
	defer idx.Close()

	return syncIndex(idx, s.path, force)
}

// Search finds bookmarks by key, name or path words, refreshing the index first if stale.
func (s *Store) Search(query string, limit int) ([]bookmark.Bookmark, error) {
	idx, err := storage.OpenIndex(s.IndexPath())
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if _, err := syncIndex(idx, s.path, false); err != nil {
		return nil, err
	}
	return idx.Search(query, limit)
}

func syncIndex(idx *storage.Index, path string, force bool) (int, error) {
	if !force {
		needs, err := idx.NeedsSync(path)
		if err != nil {
			return 0, fmt.Errorf("checking index: %w", err)
		}
		if !needs {
			return -1, nil
		}
	}

	n, err := idx.Sync(path)
	if err != nil {
		return 0, fmt.Errorf("rebuilding index: %w", err)
	}
	logging.Debugf("indexed %d bookmarks into %s", n, config.IndexPath(path))
	return n, nil
}
