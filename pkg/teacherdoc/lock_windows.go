//go:build windows

package teacherdoc

import (
	"errors"
	"syscall"
)

const (
	errorSharingViolation syscall.Errno = 32
	errorLockViolation    syscall.Errno = 33
)

func isPlatformLock(err error) bool {
	return errors.Is(err, errorSharingViolation) || errors.Is(err, errorLockViolation)
}

// setSharedPermissions is a no-op; Windows files carry ACLs instead of
// mode bits.
func setSharedPermissions(string) error {
	return nil
}
