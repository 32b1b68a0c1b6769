package fs

import (
	"errors"
	"syscall"
)

// ErrSourceChanged is returned when the source file is rewritten while it is
// being copied.
var ErrSourceChanged = errors.New("source changed during copy")

// isTransient reports whether err is worth retrying: a busy or locked file
// that the game is still holding open.
func isTransient(err error) bool {
	if errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	return isLockViolation(err)
}
