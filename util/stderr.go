//go:build linux || darwin || freebsd

package util

import (
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStderr points the process stderr at the file at path, so the
// runtime writes goroutine dumps there when the process crashes.
func RedirectStderr(path string) (*os.File, error) {
	f, err := openFatalLog(path)
	if err != nil {
		return nil, err
	}
	if err = unix.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
