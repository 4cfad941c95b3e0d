package fs

import (
	"errors"
	"syscall"
)

// isTransient reports whether an operation is worth retrying.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT)
}

// isCrossDevice reports a rename that cannot cross filesystem boundaries.
func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
