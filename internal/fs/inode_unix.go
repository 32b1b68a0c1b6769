//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inodeOf reads the inode from syscall.Stat_t so copy can tell a file that
// was replaced (saved via rename) from one that was only rewritten.
func inodeOf(info os.FileInfo) uint64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Ino
	}
	return 0
}
