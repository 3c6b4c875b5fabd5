package iccgen

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFile struct {
	write_err, close_err error
	closed               bool
}

func (f *failingFile) Name() string { return "tmp" }

func (f *failingFile) Write(p []byte) (int, error) {
	if f.write_err != nil {
		return 0, f.write_err
	}
	return len(p), nil
}

func (f *failingFile) Close() error {
	f.closed = true
	return f.close_err
}

type fakeFS struct {
	file       *failingFile
	rename_err error
	renamed    bool
	removed    []string
}

func (f *fakeFS) CreateTemp(string, string) (tempFile, error) { return f.file, nil }
func (f *fakeFS) Open(string) (io.ReadCloser, error)          { return nil, os.ErrNotExist }

func (f *fakeFS) Rename(string, string) error {
	f.renamed = f.rename_err == nil
	return f.rename_err
}

func (f *fakeFS) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

// shortWrites stores at most limit bytes of each write, then fails like a
// full disk or an exceeded file size limit.
type shortWrites struct {
	localFS
	limit int
}

type shortFile struct {
	tempFile
	limit int
}

func (f *shortFile) Write(p []byte) (int, error) {
	n, err := f.tempFile.Write(p[:min(len(p), f.limit)])
	if err == nil && n < len(p) {
		err = errors.New("file too large")
	}
	return n, err
}

func (s shortWrites) CreateTemp(dir, pattern string) (tempFile, error) {
	f, err := s.localFS.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return &shortFile{f, s.limit}, nil
}

func with_fs(t *testing.T, f fileSystem) {
	orig := fs
	fs = f
	t.Cleanup(func() { fs = orig })
}

func dir_entries(t *testing.T, dir string) (ans []string) {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		ans = append(ans, e.Name())
	}
	return
}

func TestWriteFile(t *testing.T) {
	data, err := BuildAndSerialize(display_p3_inputs())
	require.NoError(t, err)
	t.Run("Written", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "DisplayP3.icc")
		require.NoError(t, WriteFile(path, data))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)
		assert.Equal(t, []string{"DisplayP3.icc"}, dir_entries(t, dir))
		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), st.Mode().Perm()&0o644)
	})
	t.Run("ReplacesExisting", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "DisplayP3.icc")
		require.NoError(t, os.WriteFile(path, []byte("an older and longer profile than this one would be"), 0o644))
		require.NoError(t, WriteFile(path, data[:40]))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data[:40], got)
	})
	t.Run("FailedWriteKeepsPrevious", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "DisplayP3.icc")
		previous := []byte("previous good profile")
		require.NoError(t, os.WriteFile(path, previous, 0o644))
		with_fs(t, shortWrites{limit: 100})
		err := WriteFile(path, data)
		require.EqualError(t, err, "file too large")
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, previous, got)
		assert.Equal(t, []string{"DisplayP3.icc"}, dir_entries(t, dir), "temporary file left behind")
	})
	t.Run("MissingDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "x.icc")
		err := WriteFile(path, []byte("x"))
		require.ErrorIs(t, err, os.ErrNotExist)
		var pe *os.PathError
		require.True(t, errors.As(err, &pe))
		assert.True(t, strings.HasPrefix(pe.Path, filepath.Dir(path)), pe.Path)
	})
	t.Run("ClosedOnWriteFailure", func(t *testing.T) {
		f := &fakeFS{file: &failingFile{write_err: errors.New("disk full"), close_err: errors.New("close failed")}}
		with_fs(t, f)
		err := WriteFile("x.icc", []byte("x"))
		assert.EqualError(t, err, "disk full")
		assert.True(t, f.file.closed)
		assert.False(t, f.renamed)
		assert.Equal(t, []string{"tmp"}, f.removed)
	})
	t.Run("CloseFailure", func(t *testing.T) {
		f := &fakeFS{file: &failingFile{close_err: errors.New("close failed")}}
		with_fs(t, f)
		assert.EqualError(t, WriteFile("x.icc", []byte("x")), "close failed")
		assert.True(t, f.file.closed)
		assert.False(t, f.renamed)
		assert.Equal(t, []string{"tmp"}, f.removed)
	})
	t.Run("RenameFailure", func(t *testing.T) {
		f := &fakeFS{file: &failingFile{}, rename_err: errors.New("rename failed")}
		with_fs(t, f)
		assert.EqualError(t, WriteFile("x.icc", []byte("x")), "rename failed")
		assert.Equal(t, []string{"tmp"}, f.removed)
	})
	t.Run("Success", func(t *testing.T) {
		f := &fakeFS{file: &failingFile{}}
		with_fs(t, f)
		require.NoError(t, WriteFile("x.icc", []byte("x")))
		assert.True(t, f.renamed)
		assert.Empty(t, f.removed)
	})
}
