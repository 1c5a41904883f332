//go:build windows

package common

import "os"

// Windows has no POSIX uid/gid; the copier's ownership-apply step is a no-op
// there (see internal/copier/copier_windows.go).
func metadataFromFileInfo(fi os.FileInfo) EntryMetadata {
	typ, size := entityTypeFromFileInfo(fi)
	return EntryMetadata{
		Type:  typ,
		Size:  size,
		Mode:  fi.Mode().Perm(),
		MTime: fi.ModTime(),
	}
}
