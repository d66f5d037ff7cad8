//go:build !unix

package meson

import "os/exec"

func signalName(*exec.ExitError) string { return "" }
