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

package common

import (
	"os"
	"time"
)

// EntityType is the closed set of entry kinds the core distinguishes. Kept as
// a plain const block, the same call made for LogLevel: this codebase dropped
// the teacher's JeffreyRichter/enum generator (see DESIGN.md) since none of
// its remaining enum-like types is large enough to need it.
type EntityType uint8

const (
	EEntityType_Other EntityType = iota
	EEntityType_File
	EEntityType_Symlink
	EEntityType_Folder
)

func (e EntityType) String() string {
	switch e {
	case EEntityType_File:
		return "file"
	case EEntityType_Symlink:
		return "symlink"
	case EEntityType_Folder:
		return "folder"
	default:
		return "other"
	}
}

// EntryMetadata is the six-tuple the scan pool compares to decide equality
// (spec section 3): type, size-if-regular, mode, uid, gid, mtime. Modeled
// after the teacher's UnixStatAdapter (common/unixStatAdapter.go), trimmed
// down to exactly the fields the spec's equality test and copy routine need;
// the teacher's statx-only extras (birth time, inode, device IDs, link
// counts) have no role here since this tool never needs to distinguish hard
// links or track filesystem-level identity (an explicit Non-goal).
type EntryMetadata struct {
	Type  EntityType
	Size  int64 // valid only when Type == EEntityType_File
	Mode  os.FileMode
	UID   uint32
	GID   uint32
	MTime time.Time
}

// Equal implements the spec's six-tuple equality test.
func (m EntryMetadata) Equal(other EntryMetadata) bool {
	if m.Type != other.Type {
		return false
	}
	if m.Type == EEntityType_File && m.Size != other.Size {
		return false
	}
	return m.Mode == other.Mode &&
		m.UID == other.UID &&
		m.GID == other.GID &&
		m.MTime.Equal(other.MTime)
}

// LstatMetadata reads entry metadata for path without following a trailing
// symlink, matching the spec's "metadata read without following symlinks"
// requirement (section 4.2 step 1) used both for the equality test and before
// applying extended metadata.
func LstatMetadata(path string) (EntryMetadata, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return EntryMetadata{}, err
	}
	return metadataFromFileInfo(fi), nil
}

func entityTypeFromFileInfo(fi os.FileInfo) (EntityType, int64) {
	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		return EEntityType_Symlink, 0
	case fi.IsDir():
		return EEntityType_Folder, 0
	case fi.Mode().IsRegular():
		return EEntityType_File, fi.Size()
	default:
		return EEntityType_Other, 0
	}
}
