//go:build !windows

package teacherdoc

import (
	"errors"
	"os"
	"syscall"
)

func isPlatformLock(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY)
}

// setSharedPermissions makes path readable and writable by everyone.
func setSharedPermissions(path string) error {
	return os.Chmod(path, 0o666)
}
