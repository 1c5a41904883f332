//go:build !windows

package copier

import (
	"golang.org/x/sys/unix"

	"github.com/wastore/dirsync/common"
)

// chownLike applies meta's uid/gid to path without following a trailing
// symlink (spec 4.2 step 2), the POSIX analog of the teacher's various
// ownership-preservation paths in common/ownership_posix.go.
func chownLike(path string, meta common.EntryMetadata) error {
	return unix.Lchown(path, int(meta.UID), int(meta.GID))
}

// setTimesLike sets both atime and mtime of path to meta.MTime, deliberately
// (spec 4.2 step 4), operating on the symlink itself where applicable via the
// AT_SYMLINK_NOFOLLOW flag.
func setTimesLike(path string, meta common.EntryMetadata) error {
	ts := unix.NsecToTimespec(meta.MTime.UnixNano())
	times := []unix.Timespec{ts, ts} // atime, mtime — both set to source mtime
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, times, unix.AT_SYMLINK_NOFOLLOW)
}
