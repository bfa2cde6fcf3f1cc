package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name ("debug", "info", "warn", "error") to a
// LogLevel, defaulting to info for unknown names.
func ParseLevel(name string) LogLevel {
	switch name {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "warn", "WARN":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger defines the minimal logging interface for agentpipe.
// This allows users to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NewSlogLogger creates a Logger writing to stdout at the given level with
// the given format ("json" or "text").
func NewSlogLogger(level LogLevel, format string) Logger {
	return newSlogLogger(level, format, os.Stdout)
}

func newSlogLogger(level LogLevel, format string, out io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WorkflowLogger wraps a Logger adding contextual cloning helpers and domain
// convenience methods. It is cheap to copy via With* methods.
type WorkflowLogger struct {
	logger   Logger
	workflow string
	phase    string
}

// NewWorkflowLogger wraps the given Logger. A nil logger falls back to NoOpLogger.
func NewWorkflowLogger(logger Logger) *WorkflowLogger {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &WorkflowLogger{logger: logger}
}

// WithWorkflow returns a copy bound to the named workflow.
func (l *WorkflowLogger) WithWorkflow(workflow string) *WorkflowLogger {
	nl := *l
	nl.workflow = workflow
	return &nl
}

// WithPhase returns a copy bound to the named phase.
func (l *WorkflowLogger) WithPhase(phase string) *WorkflowLogger {
	nl := *l
	nl.phase = phase
	return &nl
}

func (l *WorkflowLogger) attrs(args []any) []any {
	out := make([]any, 0, len(args)+4)
	if l.workflow != "" {
		out = append(out, "workflow", l.workflow)
	}
	if l.phase != "" {
		out = append(out, "phase", l.phase)
	}
	return append(out, args...)
}

// Debug logs at debug level with workflow/phase attributes attached.
func (l *WorkflowLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, l.attrs(args)...) }

// Info logs at info level with workflow/phase attributes attached.
func (l *WorkflowLogger) Info(msg string, args ...any) { l.logger.Info(msg, l.attrs(args)...) }

// Warn logs at warn level with workflow/phase attributes attached.
func (l *WorkflowLogger) Warn(msg string, args ...any) { l.logger.Warn(msg, l.attrs(args)...) }

// Error logs at error level with workflow/phase attributes attached.
func (l *WorkflowLogger) Error(msg string, args ...any) { l.logger.Error(msg, l.attrs(args)...) }

// LogAgentCall records execution details for one agent invocation.
func (l *WorkflowLogger) LogAgentCall(agent string, dur time.Duration, success bool, err error) {
	args := []any{"agent", agent, "duration", dur, "success", success}
	if err != nil {
		args = append(args, "error", err.Error())
		l.Error("Agent call failed", args...)
		return
	}
	l.Info("Agent call completed", args...)
}

// LogWorkflowRun records aggregate workflow run metrics.
func (l *WorkflowLogger) LogWorkflowRun(workflow string, calls int, dur time.Duration, success bool, err error) {
	args := []any{"workflow", workflow, "call_count", calls, "duration", dur, "success", success}
	if err != nil {
		args = append(args, "error", err.Error())
		l.Error("Workflow run failed", args...)
		return
	}
	l.Info("Workflow run completed", args...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
