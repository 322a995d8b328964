//go:build !windows

package cli

import (
	"os"
	"syscall"
)

// shutdownSignals are SIGINT (Ctrl+C) and SIGTERM, the conventional stop
// signal sent by process managers and container runtimes.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
