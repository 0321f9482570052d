package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_WriteRead(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "results/btc/run1.json", []byte(`{"ok":true}`)))

	data, err := fs.Read(ctx, "results/btc/run1.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestLocalFS_List(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "results/btc/a.json", []byte("a")))
	require.NoError(t, fs.Write(ctx, "results/btc/b.json", []byte("b")))
	require.NoError(t, fs.Write(ctx, "results/eth/c.json", []byte("c")))

	paths, err := fs.List(ctx, "results/btc")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"results/btc/a.json", "results/btc/b.json"}, paths)
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	paths, err := fs.List(context.Background(), "results/none")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLocalFS_Exists(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := fs.Exists(ctx, "x.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Write(ctx, "x.json", []byte("x")))

	ok, err = fs.Exists(ctx, "x.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalFS_Delete(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "x.json", []byte("x")))
	require.NoError(t, fs.Delete(ctx, "x.json"))

	ok, err := fs.Exists(ctx, "x.json")
	require.NoError(t, err)
	assert.False(t, ok)
}
