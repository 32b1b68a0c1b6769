//go:build unix

package trigger

import (
	"os"
	"syscall"
)

// BackupSignals are the signals that request a backup: kill -USR1 <pid>.
func BackupSignals() []os.Signal {
	return []os.Signal{syscall.SIGUSR1}
}
