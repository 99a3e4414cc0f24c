//go:build windows

package cli

import (
	"os"
)

// shutdownSignals returns the signals that end serve and watch.
// On Windows, only os.Interrupt (Ctrl+C) is reliably supported.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
