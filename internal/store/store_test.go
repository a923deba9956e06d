package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/bookmarker/internal/bookmark"
	"github.com/matsen/bookmarker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, seed []bookmark.Bookmark) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarker", "bookmarks.json")
	if seed != nil {
		require.NoError(t, storage.WriteAll(path, seed))
	}
	s, err := Open(path)
	require.NoError(t, err)
	return s
}

func onDisk(t *testing.T, s *Store) []bookmark.Bookmark {
	t.Helper()
	got, err := storage.ReadAll(s.Path())
	require.NoError(t, err)
	return got
}

func keys(bookmarks []bookmark.Bookmark) []string {
	var out []string
	for _, b := range bookmarks {
		out = append(out, b.Key)
	}
	return out
}

func TestOpen_MissingFile(t *testing.T) {
	s := openTemp(t, nil)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Bookmarks())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "Open must not create the file")
}

func TestOpen_Malformed(t *testing.T) {
	for _, body := range []string{"[{", "", "   \n", "null", `[{"name":"x"}]`} {
		path := filepath.Join(t.TempDir(), "bookmarks.json")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		_, err := Open(path)
		assert.ErrorIs(t, err, storage.ErrMalformed, "Open(%q)", body)

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, body, string(data), "a rejected file is left untouched")
	}
}

func TestScenario_AddTouchRemove(t *testing.T) {
	s := openTemp(t, nil)

	added, err := s.Add("a", "Alpha", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, bookmark.Bookmark{Name: "Alpha", Path: "/tmp", Key: "a", Uses: 0}, added)
	assert.Equal(t, []bookmark.Bookmark{{Name: "Alpha", Path: "/tmp", Key: "a"}}, onDisk(t, s))

	touched, err := s.Touch("a")
	require.NoError(t, err)
	assert.Equal(t, "/tmp", touched.Path)
	assert.Equal(t, uint(1), onDisk(t, s)[0].Uses)

	removed, err := s.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, onDisk(t, s))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	modTime := info.ModTime()

	removed, err = s.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	info, err = os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, modTime, info.ModTime(), "no-op remove must not rewrite the file")
}

func TestRoundTrip(t *testing.T) {
	seed := []bookmark.Bookmark{
		{Name: "Zeta", Path: "/z", Key: "z", Uses: 4},
		{Name: "Alpha", Path: "rel/a", Key: "a", Uses: 0},
		{Name: "Alpha", Path: "/a2", Key: "a2", Uses: 9},
	}
	s := openTemp(t, seed)
	require.NoError(t, s.Save())

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, seed, reloaded.Bookmarks())
}

func TestAdd_Duplicate(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{{Name: "Alpha", Path: "/tmp", Key: "a"}})
	before := onDisk(t, s)

	_, err := s.Add("a", "Other", "/elsewhere")
	assert.ErrorIs(t, err, bookmark.ErrDuplicateKey)
	assert.Equal(t, before, onDisk(t, s))
	assert.Equal(t, 1, s.Len())
}

func TestAdd_AcceptsFreeFormText(t *testing.T) {
	s := openTemp(t, nil)

	for _, in := range []bookmark.Bookmark{
		{Key: "my key", Name: "Spaced", Path: "/tmp"},
		{Key: "k", Name: "", Path: "/tmp"},
		{Key: "", Name: "No key", Path: "/tmp"},
	} {
		_, err := s.Add(in.Key, in.Name, in.Path)
		require.NoError(t, err, "Add(%q, %q)", in.Key, in.Name)
	}

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	require.Equal(t, 3, reloaded.Len())
	assert.Equal(t, "my key", reloaded.Bookmarks()[0].Key)
	assert.Equal(t, "", reloaded.Bookmarks()[1].Name)
	assert.Equal(t, "", reloaded.Bookmarks()[2].Key)

	_, err = s.Add("", "Again", "/tmp")
	assert.ErrorIs(t, err, bookmark.ErrDuplicateKey)
}

func TestAdd_KeepsLiteralPath(t *testing.T) {
	s := openTemp(t, nil)

	_, err := s.Add("r", "Relative", "../some/./dir")
	require.NoError(t, err)
	assert.Equal(t, "../some/./dir", onDisk(t, s)[0].Path)
}

func TestAdd_AppendsInOrder(t *testing.T) {
	s := openTemp(t, nil)
	for _, k := range []string{"c", "a", "b"} {
		_, err := s.Add(k, "name "+k, "/"+k)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys(onDisk(t, s)))
}

func TestAdd_SaveFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub")
	s, err := Open(filepath.Join(dir, "bookmarks.json"))
	require.NoError(t, err)

	// Parent of the store path becomes a regular file, so saving must fail.
	require.NoError(t, os.WriteFile(dir, nil, 0644))

	_, err = s.Add("a", "Alpha", "/tmp")
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestTouch_OnlyIncrementsTarget(t *testing.T) {
	seed := []bookmark.Bookmark{
		{Name: "A", Path: "/a", Key: "a", Uses: 2},
		{Name: "B", Path: "/b", Key: "b", Uses: 5},
		{Name: "C", Path: "/c", Key: "c", Uses: 0},
	}
	s := openTemp(t, seed)

	_, err := s.Touch("b")
	require.NoError(t, err)

	want := []bookmark.Bookmark{seed[0], seed[1], seed[2]}
	want[1].Uses = 6
	assert.Equal(t, want, onDisk(t, s))
}

func TestTouch_NotFound(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{{Name: "A", Path: "/a", Key: "a", Uses: 2}})
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.Touch("missing")
	assert.ErrorIs(t, err, bookmark.ErrNotFound)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRemove_AllMatching(t *testing.T) {
	// Uniqueness is only enforced on add; a hand-edited file may repeat keys.
	s := openTemp(t, []bookmark.Bookmark{
		{Name: "A1", Path: "/a1", Key: "a"},
		{Name: "B", Path: "/b", Key: "b"},
		{Name: "A2", Path: "/a2", Key: "a"},
	})

	removed, err := s.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b"}, keys(onDisk(t, s)))
}

func TestTop(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{
		{Key: "a", Uses: 1},
		{Key: "b", Uses: 3},
		{Key: "c", Uses: 1},
		{Key: "d", Uses: 3},
		{Key: "e", Uses: 0},
		{Key: "f", Uses: 2},
		{Key: "g", Uses: 1},
	})

	tests := []struct {
		n    int
		want []string
	}{
		{5, []string{"b", "d", "f", "a", "c"}},
		{2, []string{"b", "d"}},
		{0, []string{"b", "d", "f", "a", "c", "g", "e"}},
		{100, []string{"b", "d", "f", "a", "c", "g", "e"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keys(s.Top(tt.n)), "Top(%d)", tt.n)
	}

	// Top works on a copy
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, keys(s.Bookmarks()))
}

func TestTop_Empty(t *testing.T) {
	s := openTemp(t, nil)
	assert.Empty(t, s.Top(5))
}

func TestFilter(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{
		{Key: "proj", Name: "Projects"},
		{Key: "dl", Name: "Downloads"},
		{Key: "p2", Name: "Photos"},
	})

	got, err := s.Filter("p*")
	require.NoError(t, err)
	assert.Equal(t, []string{"proj", "p2"}, keys(got))

	got, err = s.Filter("Down*")
	require.NoError(t, err)
	assert.Equal(t, []string{"dl"}, keys(got))

	got, err = s.Filter("zzz")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Filter("[")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	live := t.TempDir()
	seed := []bookmark.Bookmark{
		{Name: "Live", Path: live, Key: "l"},
		{Name: "Gone", Path: filepath.Join(live, "gone"), Key: "g"},
		{Name: "Also gone", Path: "/definitely/not/here", Key: "x"},
	}
	s := openTemp(t, seed)

	removed, err := s.Clean(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "x"}, keys(removed))
	assert.Equal(t, []string{"l"}, keys(onDisk(t, s)))

	// Second run with no filesystem change removes nothing
	removed, err = s.Clean(nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Equal(t, []string{"l"}, keys(onDisk(t, s)))
}

func TestClean_NothingStaleDoesNotSave(t *testing.T) {
	s := openTemp(t, nil)
	_, err := s.Add("a", "Alpha", "/tmp")
	require.NoError(t, err)
	require.NoError(t, os.Remove(s.Path()))

	removed, err := s.Clean(func(string) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, removed)
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "clean without removals must not write")
}

func TestStale(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{
		{Key: "a", Path: "/keep"},
		{Key: "b", Path: "/drop"},
	})

	stale := s.Stale(func(p string) bool { return p == "/keep" })
	assert.Equal(t, []string{"b"}, keys(stale))
	assert.Equal(t, 2, s.Len())
}

func TestPurge(t *testing.T) {
	s := openTemp(t, []bookmark.Bookmark{{Key: "a", Name: "A", Path: "/a"}})
	_, err := s.Reindex(true)
	require.NoError(t, err)

	removed, err := Purge(s.Path())
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(s.IndexPath())
	assert.True(t, os.IsNotExist(err))

	removed, err = Purge(s.Path())
	require.NoError(t, err)
	assert.False(t, removed)
}
