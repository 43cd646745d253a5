//go:build !linux && !darwin && !freebsd && !windows

package util

import (
	"errors"
	"os"
)

func RedirectStderr(path string) (*os.File, error) {
	return nil, errors.New("stderr redirection is not supported on this platform")
}
