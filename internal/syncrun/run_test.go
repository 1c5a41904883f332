package syncrun

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wastore/dirsync/common"
)

func testLogger() common.ILogger {
	return common.NewLogger(common.LogError, os.Stderr)
}

func TestRunFailsWhenDestinationMissing(t *testing.T) {
	srcRoot := t.TempDir()
	_, err := Run(Options{SourceRoot: srcRoot, TargetRoot: filepath.Join(srcRoot, "nope")}, testLogger())
	require.Error(t, err)
}

func TestRunReplicatesNestedTreeAndIsIdempotent(t *testing.T) {
	srcRoot := t.TempDir()
	tgtRoot := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(srcRoot, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcRoot, "a", "b", "c.txt"), []byte("hi"), 0644))

	snap, err := Run(Options{SourceRoot: srcRoot, TargetRoot: tgtRoot, Threads: 2}, testLogger())
	require.NoError(t, err)
	require.EqualValues(t, 3, snap.ScannedEntries)
	require.EqualValues(t, 1, snap.CopiedEntries)

	got, err := os.ReadFile(filepath.Join(tgtRoot, "a", "b", "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "hi", string(got))

	snap2, err := Run(Options{SourceRoot: srcRoot, TargetRoot: tgtRoot, Threads: 2}, testLogger())
	require.NoError(t, err)
	require.EqualValues(t, 0, snap2.CopiedEntries)
	require.EqualValues(t, 0, snap2.RemovedEntries)
	require.EqualValues(t, 3, snap2.SkippedEntries)
}

func TestRunPrunesOrphansAndReplacesTypeClash(t *testing.T) {
	srcRoot := t.TempDir()
	tgtRoot := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(srcRoot, "keep"), []byte("keep"), 0644))
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(srcRoot, "keep"), mtime, mtime))

	require.NoError(t, os.WriteFile(filepath.Join(tgtRoot, "stale"), []byte("old"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tgtRoot, "keep"), 0755))

	snap, err := Run(Options{SourceRoot: srcRoot, TargetRoot: tgtRoot, Threads: 2}, testLogger())
	require.NoError(t, err)

	entries, err := os.ReadDir(tgtRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "keep", entries[0].Name())

	fi, err := os.Lstat(filepath.Join(tgtRoot, "keep"))
	require.NoError(t, err)
	require.False(t, fi.IsDir())

	require.GreaterOrEqual(t, snap.RemovedEntries, uint64(2))
}
