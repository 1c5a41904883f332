//go:build !windows

package common

import (
	"os"
	"sync"
	"syscall"
)

var (
	umask     int
	umaskOnce sync.Once
)

// GetUmask retrieves the current process's umask without permanently
// modifying it. The value is cached after the first call.
func GetUmask() int {
	umaskOnce.Do(func() {
		current := syscall.Umask(0)
		syscall.Umask(current)
		umask = current
	})
	return umask
}

// DEFAULT_FILE_PERM is used only as the placeholder mode passed to mkdir/open
// when materializing a directory shell or file before the copier's
// extended-metadata pass overwrites it with the source's real mode bits
// (spec section 4.2). It is never itself the final mode left on disk.
var DEFAULT_FILE_PERM = os.FileMode(0666 &^ GetUmask())
