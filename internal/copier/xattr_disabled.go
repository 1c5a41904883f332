//go:build !(xattr && (linux || darwin))

package copier

// copyXattr is a no-op in builds without the xattr tag (or on platforms the
// xattr tag doesn't support). The base ownership/mode/timestamp contract
// still holds without it, per spec section 9.
func copyXattr(src, tgt string) error {
	return nil
}
