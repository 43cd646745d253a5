//go:build windows

package util

import (
	"os"
	"syscall"
)

var (
	kernel32         = syscall.MustLoadDLL("kernel32.dll")
	procSetStdHandle = kernel32.MustFindProc("SetStdHandle")
)

func setStdHandle(stdhandle int32, handle syscall.Handle) error {
	r0, _, e1 := syscall.Syscall(procSetStdHandle.Addr(), 2, uintptr(stdhandle), uintptr(handle), 0)
	if r0 == 0 {
		if e1 != 0 {
			return error(e1)
		}
		return syscall.EINVAL
	}
	return nil
}

func RedirectStderr(path string) (*os.File, error) {
	f, err := openFatalLog(path)
	if err != nil {
		return nil, err
	}
	if err = setStdHandle(syscall.STD_ERROR_HANDLE, syscall.Handle(f.Fd())); err != nil {
		f.Close()
		return nil, err
	}
	// SetStdHandle does not affect prior references to stderr
	os.Stderr = f
	return f, nil
}
