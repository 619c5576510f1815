package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseBlobStore(t *testing.T, s BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, DefaultKey)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, DefaultKey, []byte(`[1]`)))
	got, err := s.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, `[1]`, string(got))

	require.NoError(t, s.Set(ctx, DefaultKey, []byte(`[2]`)))
	got, err = s.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, `[2]`, string(got))
}

func TestMemory(t *testing.T) {
	exerciseBlobStore(t, NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", in))
	in[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseBlobStore(t, f)
}

func TestFile_SanitizesKey(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "../escape/key", []byte("x")))
	_, err = os.Stat(filepath.Join(dir, ".._escape_key.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNewFile_EmptyDir(t *testing.T) {
	_, err := NewFile("  ")
	require.Error(t, err)
}
