//go:build windows

package copier

import "errors"

func mkfifo(path string) error {
	return errors.New("fifo not supported on windows")
}
