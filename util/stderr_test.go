//go:build linux || darwin || freebsd

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRedirectStderr(t *testing.T) {
	saved, err := unix.Dup(int(os.Stderr.Fd()))
	require.NoError(t, err)
	defer func() {
		unix.Dup2(saved, int(os.Stderr.Fd()))
		unix.Close(saved)
	}()

	path := filepath.Join(t.TempDir(), "fatal.log")
	f, err := RedirectStderr(path)
	require.NoError(t, err)
	defer f.Close()
	os.Stderr.WriteString("goroutine 1 [running]\n")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "--------------------------------\n")
	assert.Contains(t, string(raw), "goroutine 1 [running]")

	_, err = RedirectStderr(filepath.Join(path, "nested"))
	assert.Error(t, err)
}
