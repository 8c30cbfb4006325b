//go:build windows

package main

import "os"

// shutdownSignals cancel a run gracefully.
var shutdownSignals = []os.Signal{os.Interrupt}
