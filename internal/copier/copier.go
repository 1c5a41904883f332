// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package copier implements the stateless, per-entry copy routine described
// in spec section 4.2. It is invoked by both worker pools and never retains
// state between calls: everything it needs comes from the two path
// arguments.
package copier

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/wastore/dirsync/common"
)

// Options configures a Copier. Both the ACL and xattr passes below are
// compile-time-optional (spec section 9): when built in, they run
// unconditionally for every entry; when built out, copyXattr/applyACL
// compile to no-ops and the base ownership/mode/timestamp contract still
// holds. There is deliberately no runtime flag for either.
type Options struct{}

// Copier materializes target entries as faithful replicas of source entries.
// It is safe for concurrent use by multiple workers: all state lives in the
// call's arguments, matching the spec's "stateless routine" framing.
type Copier struct {
	opts Options
}

func New(opts Options) *Copier {
	return &Copier{opts: opts}
}

// CopyFile implements spec 4.2's copy_file for a non-directory source entry.
// bytesCopied is meaningful only when the source is a regular file; it feeds
// the stats registry's AddCopied(entries, bytes) call.
func (c *Copier) CopyFile(src, tgt string) (bytesCopied int64, err error) {
	meta, err := common.LstatMetadata(src)
	if err != nil {
		return 0, errors.Wrapf(err, "stat source %q", src)
	}

	switch meta.Type {
	case common.EEntityType_Symlink:
		if err := c.copySymlink(src, tgt); err != nil {
			return 0, err
		}
	case common.EEntityType_File:
		n, err := c.copyRegularFile(src, tgt)
		if err != nil {
			return 0, err
		}
		bytesCopied = n
	default:
		return 0, errors.Errorf("unsupported entry kind at %q", src)
	}

	if err := c.applyExtendedMetadata(src, tgt, meta); err != nil {
		return bytesCopied, errors.Wrapf(err, "apply metadata to %q", tgt)
	}
	return bytesCopied, nil
}

func (c *Copier) copySymlink(src, tgt string) error {
	linkText, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "readlink %q", src)
	}

	if err := os.Remove(tgt); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove existing target %q", tgt)
	}

	if err := os.Symlink(linkText, tgt); err != nil {
		return errors.Wrapf(err, "create symlink %q -> %q", tgt, linkText)
	}
	return nil
}

func (c *Copier) copyRegularFile(src, tgt string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, "open source %q", src)
	}
	defer in.Close()

	out, err := os.OpenFile(tgt, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, common.DEFAULT_FILE_PERM)
	if err != nil {
		return 0, errors.Wrapf(err, "open target %q", tgt)
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, errors.Wrapf(err, "copy contents to %q", tgt)
	}
	if err := out.Sync(); err != nil {
		return n, errors.Wrapf(err, "sync %q", tgt)
	}
	return n, nil
}

// CopyDirectory implements spec 4.2's copy_directory: create tgt if it does
// not already exist, tolerating "already exists", then apply extended
// metadata. The scan pool, not this routine, is responsible for recursing.
func (c *Copier) CopyDirectory(src, tgt string) error {
	meta, err := common.LstatMetadata(src)
	if err != nil {
		return errors.Wrapf(err, "stat source %q", src)
	}

	if err := os.Mkdir(tgt, common.DEFAULT_FILE_PERM); err != nil && !os.IsExist(err) {
		return errors.Wrapf(err, "create directory %q", tgt)
	}

	if err := c.applyExtendedMetadata(src, tgt, meta); err != nil {
		return errors.Wrapf(err, "apply metadata to %q", tgt)
	}
	return nil
}

// applyExtendedMetadata is the common subroutine of spec 4.2: ownership,
// mode, timestamps, and (optionally) ACLs and xattrs. Every step operates on
// tgt itself, never on the referent of a symlink.
func (c *Copier) applyExtendedMetadata(src, tgt string, meta common.EntryMetadata) error {
	if err := chownLike(tgt, meta); err != nil {
		return errors.Wrap(err, "chown")
	}

	if meta.Type != common.EEntityType_Symlink {
		if err := os.Chmod(tgt, meta.Mode); err != nil {
			return errors.Wrap(err, "chmod")
		}
	}

	if err := setTimesLike(tgt, meta); err != nil {
		return errors.Wrap(err, "set times")
	}

	if err := applyACL(src, tgt, meta); err != nil {
		return errors.Wrap(err, "apply acl")
	}

	if err := copyXattr(src, tgt); err != nil {
		return errors.Wrap(err, "copy xattr")
	}

	return nil
}
