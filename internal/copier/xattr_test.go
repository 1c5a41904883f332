//go:build xattr && (linux || darwin)

package copier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/xattr"
	"github.com/stretchr/testify/require"
)

func TestCopyXattrFaithfulness(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	tgt := filepath.Join(dir, "tgt.txt")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))
	require.NoError(t, os.WriteFile(tgt, []byte("data"), 0644))

	if err := xattr.LSet(src, "user.mine", []byte("v1")); err != nil {
		t.Skipf("xattrs unsupported on this filesystem: %v", err)
	}
	require.NoError(t, xattr.LSet(tgt, "user.stale", []byte("remove-me")))

	c := New(Options{})
	_, err := c.CopyFile(src, tgt)
	require.NoError(t, err)

	val, err := xattr.LGet(tgt, "user.mine")
	require.NoError(t, err)
	require.Equal(t, "v1", string(val))

	_, err = xattr.LGet(tgt, "user.stale")
	require.Error(t, err, "stale xattr not present on source must be removed from target")
}

func TestCopyXattrWithoutUserXattrsSucceeds(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	tgt := filepath.Join(dir, "tgt.txt")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0644))
	require.NoError(t, os.WriteFile(tgt, []byte("data"), 0644))

	err := copyXattr(src, tgt)
	require.NoError(t, err)
}
