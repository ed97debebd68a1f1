package logsink

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/gitpan/Data-Plist/pkg/trace"
)

// Hook adapts trace events to a structured zerolog logger.
type Hook struct {
	Logger zerolog.Logger
}

// New constructs a hook writing to logger.
func New(logger zerolog.Logger) Hook {
	return Hook{Logger: logger}
}

// Notify renders the event as one structured log line. Events carrying an
// error log at warn level, everything else at info.
func (h Hook) Notify(_ context.Context, event trace.Event) error {
	normalized := trace.NormalizeEvent(event)
	if normalized.Verb == "" {
		return nil
	}

	line := h.Logger.Info()
	if normalized.Err != nil {
		line = h.Logger.Warn()
	}
	line = line.
		Str("event_id", normalized.ID).
		Str("verb", normalized.Verb).
		Time("occurred_at", normalized.OccurredAt)
	if normalized.Path != "" {
		line = line.Str("path", normalized.Path)
	}
	if normalized.Class != "" {
		line = line.Str("class", normalized.Class)
	}
	if normalized.Channel != "" {
		line = line.Str("channel", normalized.Channel)
	}
	if normalized.Err != nil {
		line = line.Err(normalized.Err)
	}
	if len(normalized.Metadata) > 0 {
		line = line.Fields(normalized.Metadata)
	}
	line.Msg("plist trace")
	return nil
}

// DefaultLogger returns a console logger suitable for CLI use.
func DefaultLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", app).Logger()
}
