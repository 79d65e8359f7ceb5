package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const serviceName = "bedspace"

// NewLogger builds the process-wide slog logger: tinted console output for
// local development, JSON elsewhere. Every record carries the service name
// and environment so aggregated logs stay attributable.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	writer := os.Stdout
	var handler slog.Handler
	if env == "dev" || env == "local" {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		})
	} else {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return slog.New(handler).With("service", serviceName, "env", env)
}
