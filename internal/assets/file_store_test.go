package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreReadWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "watermarked/diwali.jpg", []byte("jpeg-bytes")))

	data, err := store.Read(ctx, "watermarked/diwali.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	onDisk, err := os.ReadFile(filepath.Join(dir, "watermarked", "diwali.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), onDisk)

	ok, err := store.Exists(ctx, "watermarked/diwali.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "default.jpg", []byte("old")))
	require.NoError(t, store.Write(ctx, "default.jpg", []byte("new")))

	data, err := store.Read(ctx, "default.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreMissing(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(ctx, "nope.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Exists(ctx, "nope.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRejectsEscapingNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../secret", "a/../../b", "", "   "} {
		_, err := store.Read(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)

		err = store.Write(ctx, name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "default.jpg", want: "default.jpg"},
		{in: "/default.jpg", want: "default.jpg"},
		{in: "watermarked/./diwali.jpg", want: "watermarked/diwali.jpg"},
		{in: "../x.jpg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := CleanName(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidName, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/static/default.jpg", URL("", "default.jpg"))
	assert.Equal(t, "https://cdn.example.com/static/watermarked/diwali.jpg", URL("https://cdn.example.com/", "watermarked/diwali.jpg"))
	assert.Equal(t, "/static/my%20card.jpg", URL("", "my card.jpg"))
}
