//go:build xattr && (linux || darwin)

// xattr support is compile-time-optional per spec section 9 ("ACLs and
// xattrs as features"): when built with the xattr tag, this file ships on
// the platforms that support it (linux/darwin) and runs unconditionally for
// every entry, mirroring acl_linux.go's split exactly (real implementation
// here, no-op stub in xattr_disabled.go). github.com/pkg/xattr is the same
// dependency the teacher's common/hash_data_unix.go reaches for.
package copier

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/xattr"
)

// systemXattrPrefix marks the reserved namespace the xattr-copy pass must
// never touch (spec 4.2 step 6). Note this exclusion does NOT apply to the
// ACL pass in acl_linux.go, which deliberately targets two specific names
// inside this same namespace as a separate, explicit step.
const systemXattrPrefix = "system."

// copyXattr makes tgt's non-system xattr set bit-equal to src's: every
// surviving source name/value pair is copied, and any extra name already on
// tgt that isn't on src is removed. Uses the L-prefixed calls throughout so
// that when src or tgt is a symlink the attributes are read/written on the
// link itself, never its referent.
func copyXattr(src, tgt string) error {
	srcNames, err := xattr.LList(src)
	if err != nil {
		return errors.Wrapf(err, "list xattrs on %q", src)
	}
	srcSet := make(map[string]struct{}, len(srcNames))

	for _, name := range srcNames {
		if strings.HasPrefix(name, systemXattrPrefix) {
			continue
		}
		srcSet[name] = struct{}{}

		val, err := xattr.LGet(src, name)
		if err != nil {
			return errors.Wrapf(err, "read xattr %q on %q", name, src)
		}
		if err := xattr.LSet(tgt, name, val); err != nil {
			return errors.Wrapf(err, "set xattr %q on %q", name, tgt)
		}
	}

	tgtNames, err := xattr.LList(tgt)
	if err != nil {
		return errors.Wrapf(err, "list xattrs on %q", tgt)
	}
	for _, name := range tgtNames {
		if strings.HasPrefix(name, systemXattrPrefix) {
			continue
		}
		if _, present := srcSet[name]; present {
			continue
		}
		if err := xattr.LRemove(tgt, name); err != nil {
			return errors.Wrapf(err, "remove stale xattr %q on %q", name, tgt)
		}
	}

	return nil
}
