//go:build windows

package cli

import "os"

// shutdownSignals is os.Interrupt only. The Go runtime maps CTRL_BREAK_EVENT
// and console-close events to it; SIGTERM does not exist on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
