package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logging interface used across the application.
// Kept as an interface so the implementation can be swapped if needed.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields is the common field type for structured log entries.
type Fields map[string]any

// Log is the global logger instance. It works at info level even when
// Init is never called.
var Log Logger = New("info")

// Init replaces the global logger with one configured at the given level.
// Empty or unknown levels fall back to info.
func Init(level string) {
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	Log = New(level)
}

// New creates a gookit/slog based logger at the given level.
func New(level string) Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	// Keep the default fields down to datetime/level/message and surface
	// everything else through Fields as top-level JSON keys.
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}

// withServiceName fills the service_name field from the SERVICE_NAME env var.
func withServiceName(fields Fields) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields["service_name"]; !ok {
		if sn := os.Getenv("SERVICE_NAME"); sn != "" {
			fields["service_name"] = sn
		}
	}
	return fields
}

// InfoWithFields emits a structured JSON log entry at info level.
func InfoWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Info(msg)
		return
	}
	Log.Info(msg)
}

func DebugWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Debug(msg)
		return
	}
	Log.Debug(msg)
}

func WarnWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Warn(msg)
		return
	}
	Log.Warn(msg)
}

func ErrorWithFields(msg string, fields Fields) {
	fields = withServiceName(fields)
	if lg, ok := Log.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Error(msg)
		return
	}
	Log.Error(msg)
}
