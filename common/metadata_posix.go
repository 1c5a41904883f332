//go:build !windows

package common

import (
	"os"
	"syscall"
)

func metadataFromFileInfo(fi os.FileInfo) EntryMetadata {
	typ, size := entityTypeFromFileInfo(fi)
	m := EntryMetadata{
		Type:  typ,
		Size:  size,
		Mode:  fi.Mode().Perm(),
		MTime: fi.ModTime(),
	}
	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		m.UID = sys.Uid
		m.GID = sys.Gid
	}
	return m
}
