//go:build unix

package meson

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalName returns the name of the signal that terminated the
// process, or "" if it exited normally or the wait status is opaque.
func signalName(err *exec.ExitError) string {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}
	return unix.SignalName(unix.Signal(ws.Signal()))
}
