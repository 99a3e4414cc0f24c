//go:build !windows

package cli

import (
	"os"
	"syscall"
)

// shutdownSignals returns the signals that end serve and watch.
func shutdownSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}
