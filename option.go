package ecpps

import (
	"os"

	"github.com/rs/zerolog"
)

// WorldOption represents an option that can be used to augment how the World
// will be constructed.
type WorldOption struct {
	apply func(*World)
}

// WithLogger replaces the world's logger. The configured log level from the
// environment does not apply to a logger supplied here.
func WithLogger(logger zerolog.Logger) WorldOption {
	return WorldOption{
		apply: func(w *World) {
			w.logger = logger
		},
	}
}

// WithPrettyLog makes the world log human-readable console output instead of
// JSON lines.
func WithPrettyLog() WorldOption {
	return WorldOption{
		apply: func(w *World) {
			w.logger = w.logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}
}

// WithAutoGroup promotes every staged entity set at the end of each Update
// pass. The default leaves the promotion boundary under each system's
// control; this option is for callers that never want to see the staged/live
// distinction span more than one frame.
func WithAutoGroup() WorldOption {
	return WorldOption{
		apply: func(w *World) {
			w.autoGroup = true
		},
	}
}
