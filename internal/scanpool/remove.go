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

package scanpool

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// removeEntry deletes a stale or type-clashing target entry and reports how
// many entries were removed, counting every descendant of a directory so
// that removed_entries matches the orphan-pruning scenario in spec section 8
// (removing c/d then c counts as two removals, not one).
func removeEntry(path string, isDir bool) (removed uint64, size uint64, err error) {
	if !isDir {
		fi, statErr := os.Lstat(path)
		if statErr == nil && fi.Mode().IsRegular() {
			size = uint64(fi.Size())
		}
		if err := os.Remove(path); err != nil {
			return 0, 0, errors.Wrapf(err, "removing %q", path)
		}
		return 1, size, nil
	}

	var count uint64
	var bytes uint64
	walkErr := filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.Mode().IsRegular() {
			bytes += uint64(fi.Size())
		}
		count++
		return nil
	})
	if walkErr != nil {
		return 0, 0, errors.Wrapf(walkErr, "walking %q for removal", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return 0, 0, errors.Wrapf(err, "removing %q", path)
	}
	return count, bytes, nil
}
