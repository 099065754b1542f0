package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/adapters/cas"
	"go.trai.ch/m2/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	record := domain.BuildRecord{
		Key:       "download:0123456789abcdef",
		Operation: "download",
		Dependencies: []domain.RecordedDependency{{
			Kind: domain.DependencyExecution,
			Path: "/repo/org/example/lib/1.0/lib-1.0.jar",
			Descriptor: domain.ContentDescriptor{
				Exists:  true,
				Size:    3,
				ModTime: time.Unix(1700000000, 0).UTC(),
				Hash:    42,
			},
		}},
		Artifacts: []domain.RecordedArtifact{{Coordinates: "org.example:lib:jar:1.0", LocalPath: "/repo/x.jar"}},
		Timestamp: time.Unix(1700000100, 0).UTC(),
	}

	require.NoError(t, store.Put(root, record))

	got, err := store.Get(root, record.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.Key, got.Key)
	require.Len(t, got.Dependencies, 1)
	assert.True(t, record.Dependencies[0].Descriptor.Equal(got.Dependencies[0].Descriptor))
	assert.Equal(t, record.Artifacts, got.Artifacts)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	got, err := cas.NewStore().Get(t.TempDir(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Overwrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.BuildRecord{Key: "k", Warnings: []string{"first"}}))
	require.NoError(t, store.Put(root, domain.BuildRecord{Key: "k", RebuildAlways: true}))

	got, err := store.Get(root, "k")
	require.NoError(t, err)
	assert.True(t, got.RebuildAlways)
	assert.Empty(t, got.Warnings)

	entries, err := os.ReadDir(domain.DefaultStorePath(root))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()
	require.NoError(t, store.Put(root, domain.BuildRecord{Key: "k"}))

	dir := domain.DefaultStorePath(root)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid"), 0o600))

	_, err = store.Get(root, "k")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}
