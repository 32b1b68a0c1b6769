//go:build !unix

package trigger

import "os"

// BackupSignals is empty outside unix: there is no spare signal to send.
func BackupSignals() []os.Signal {
	return nil
}
