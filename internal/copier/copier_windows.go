//go:build windows

package copier

import (
	"os"

	"github.com/wastore/dirsync/common"
)

// chownLike is a no-op on Windows: there is no POSIX uid/gid to set. The
// spec's ownership-preservation contract is a POSIX-specific requirement
// (section 6, "filesystem surface"); on Windows this tool still satisfies
// mode/timestamp preservation, just not ownership.
func chownLike(path string, meta common.EntryMetadata) error {
	return nil
}

func setTimesLike(path string, meta common.EntryMetadata) error {
	return os.Chtimes(path, meta.MTime, meta.MTime)
}
