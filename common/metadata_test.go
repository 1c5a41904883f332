package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLstatMetadataDistinguishesEntityTypes(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	sub := filepath.Join(dir, "d")
	link := filepath.Join(dir, "l")

	require.NoError(t, os.WriteFile(file, []byte("data"), 0644))
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.Symlink(file, link))

	fileMeta, err := LstatMetadata(file)
	require.NoError(t, err)
	require.Equal(t, EEntityType_File, fileMeta.Type)
	require.EqualValues(t, 4, fileMeta.Size)

	dirMeta, err := LstatMetadata(sub)
	require.NoError(t, err)
	require.Equal(t, EEntityType_Folder, dirMeta.Type)

	linkMeta, err := LstatMetadata(link)
	require.NoError(t, err)
	require.Equal(t, EEntityType_Symlink, linkMeta.Type)
}

func TestEntryMetadataEqualIgnoresSizeForNonFiles(t *testing.T) {
	mtime := time.Now().Truncate(time.Second)
	a := EntryMetadata{Type: EEntityType_Folder, Mode: 0755, MTime: mtime}
	b := EntryMetadata{Type: EEntityType_Folder, Mode: 0755, MTime: mtime, Size: 999}
	require.True(t, a.Equal(b))
}

func TestEntryMetadataEqualDetectsDifference(t *testing.T) {
	mtime := time.Now().Truncate(time.Second)
	a := EntryMetadata{Type: EEntityType_File, Mode: 0644, MTime: mtime, Size: 10}
	b := EntryMetadata{Type: EEntityType_File, Mode: 0644, MTime: mtime, Size: 11}
	require.False(t, a.Equal(b))

	c := EntryMetadata{Type: EEntityType_File, Mode: 0600, MTime: mtime, Size: 10}
	require.False(t, a.Equal(c))
}
