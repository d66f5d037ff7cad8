// Package diag is the diagnostic side channel for messages intended
// for an enclosing build orchestrator, kept apart from the output of
// the tool being driven.
package diag

import "github.com/qiniu/x/log"

// Emission points are variables so tests can capture diagnostics.
var (
	Infof = log.Infof
	Warnf = log.Warnf
)
