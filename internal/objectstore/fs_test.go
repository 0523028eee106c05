package objectstore

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFSStore(afero.NewMemMapFs(), "memory")
	p := ParsePath("media/videos/abc/clip.mp4")

	assert.False(t, store.Exists(ctx, p))

	require.NoError(t, store.Upload(ctx, p, []byte("frames"), "video/mp4"))
	assert.True(t, store.Exists(ctx, p))
	assert.False(t, store.Exists(ctx, p.Dir()), "directories are not objects")

	data, err := store.Download(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("frames"), data)

	require.NoError(t, store.Delete(ctx, p))
	assert.False(t, store.Exists(ctx, p))

	_, err = store.Download(ctx, p)
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestFSStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewFSStore(afero.NewMemMapFs(), "memory")
	assert.NoError(t, store.Delete(context.Background(), ParsePath("media/none.jpg")))
}

func TestFSStoreBasePath(t *testing.T) {
	ctx := context.Background()
	root := afero.NewMemMapFs()
	store := NewFSStore(afero.NewBasePathFs(root, "/srv/objects"), "filesystem")

	require.NoError(t, store.Upload(ctx, ParsePath("media/a.jpg"), []byte("x"), "image/jpeg"))

	ok, err := afero.Exists(root, "/srv/objects/media/a.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFSStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFSStore(afero.NewMemMapFs(), "memory")

	assert.ErrorIs(t, store.Upload(ctx, ParsePath("media/a.jpg"), []byte("x"), ""), context.Canceled)
}
