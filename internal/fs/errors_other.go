//go:build !windows

package fs

func isLockViolation(error) bool { return false }
