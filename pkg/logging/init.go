package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs the process-wide slog handler. Steps and the pipeline
// log through slog only, so this is the single switch for output format.
// Logs go to stderr; stdout belongs to the wrapped external tools.
func Initialize(loggingType string, logLevelName string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(logLevelName))
	if err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}

	var (
		logHandlerOptions = slog.HandlerOptions{
			Level: logLevel,
		}
		logHandler slog.Handler
	)

	switch loggingType {
	case JSON:
		logHandler = slog.NewJSONHandler(os.Stderr, &logHandlerOptions)
	case Text:
		logHandler = slog.NewTextHandler(os.Stderr, &logHandlerOptions)
	case Tint:
		logHandler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: logHandlerOptions.Level,
		})
	default:
		return fmt.Errorf("unknown logging type: %s", loggingType)
	}

	slog.SetDefault(slog.New(logHandler))
	slog.Debug("logging initialized", "logLevel", logLevel)
	return nil
}
