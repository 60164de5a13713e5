package tiling

import (
	"io"

	"github.com/charmbracelet/log"
)

// The engine never fails hard on inconsistent trees; it logs and degrades.
// By default those diagnostics are discarded so the library stays silent.
var logger = log.NewWithOptions(io.Discard, log.Options{})

// SetLogger routes the engine's diagnostics to the given logger.
// Defensive-path messages are logged at warn level, edits at debug level.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
