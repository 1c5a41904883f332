//go:build !(acl && linux)

package copier

import "github.com/wastore/dirsync/common"

// applyACL is a no-op in builds without the acl tag (or on non-Linux
// platforms, where the reserved posix_acl_* xattr convention acl_linux.go
// relies on doesn't exist). The base ownership/mode/timestamp contract still
// holds without it, per spec section 9.
func applyACL(src, tgt string, meta common.EntryMetadata) error {
	return nil
}
