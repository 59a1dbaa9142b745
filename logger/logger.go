package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FormatConsole selects the human-readable writer.
const FormatConsole = "console"

// Logger is a zerolog logger bound to one service name.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// Init builds the process-wide logger from cfg and makes it the default.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	name := cfg.ServiceName
	if name == "" {
		name = defaultService
	}
	l := New(cfg, name)
	SetGlobalLogger(l)
	if isConsole(cfg.Format) {
		log.Logger = l.zl
	}
}

// New creates a logger that writes to the configured output.
func New(cfg *Config, service string) *Logger {
	return NewWithWriter(cfg, service, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w instead of the configured output.
// An unknown level falls back to info.
func NewWithWriter(cfg *Config, service string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = zerolog.New(consoleWriter(w, service, cfg.NoColor))
	} else {
		zl = zerolog.New(w).With().Str("service", service).Logger()
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger(), service: service}
}

type ctxKey int

const (
	runIDKey ctxKey = iota
	traceIDKey
	spanIDKey
)

// ContextWithRunID tags ctx with the identifier of a pipeline run.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// ContextWithTrace tags ctx with trace and span identifiers.
func ContextWithTrace(ctx context.Context, traceID, spanID string) context.Context {
	ctx = context.WithValue(ctx, traceIDKey, traceID)
	return context.WithValue(ctx, spanIDKey, spanID)
}

var ctxFields = []struct {
	key   ctxKey
	field string
}{
	{runIDKey, FieldRunID},
	{traceIDKey, FieldTraceID},
	{spanIDKey, FieldSpanID},
}

// WithContext returns a logger carrying the run and trace IDs found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	for _, f := range ctxFields {
		if v, ok := ctx.Value(f.key).(string); ok && v != "" {
			zc = zc.Str(f.field, v)
		}
	}
	return l.derive(zc)
}

// WithComponent tags the logger with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name))
}

// WithStage tags the logger with a pipeline stage name.
func (l *Logger) WithStage(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldStage, name))
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{zl: zc.Logger(), service: l.service}
}

// Service returns the service name the logger was created for.
func (l *Logger) Service() string { return l.service }

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fm := range fields {
		event.Fields(fm)
	}
	event.Msg(msg)
}

// --- Process-wide logger ---

const defaultService = "default"

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// SetGlobalLogger replaces the process-wide logger.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// GetGlobalLogger returns the process-wide logger. Before Init it is a
// console logger at info level on stderr.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}
	cfg := &Config{ServiceName: defaultService}
	cfg.ApplyDefaults()
	l = New(cfg, defaultService)
	SetGlobalLogger(l)
	return l
}

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Error(msg, fields...) }

// --- Output ---

func isConsole(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, "pretty", "text":
		return true
	}
	return false
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

// levelStyle maps a zerolog level name to its three-letter tag and ANSI color.
func levelStyle(level string) (tag, color string) {
	switch level {
	case "trace":
		return "TRC", ""
	case "debug":
		return "DBG", "36"
	case "info":
		return "INF", "32"
	case "warn":
		return "WRN", "33"
	case "error":
		return "ERR", "31"
	case "fatal":
		return "FTL", "35"
	}
	return strings.ToUpper(level), ""
}

func paint(s, color string, noColor bool) string {
	if noColor || color == "" {
		return s
	}
	return "\033[" + color + "m" + s + "\033[0m"
}

// consoleWriter renders "[SVC][INF] message key:value" lines. The service
// prefix is the first three letters of the service name.
func consoleWriter(w io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	prefix := ""
	if service != defaultService && len(service) >= 3 {
		prefix = paint("["+strings.ToUpper(service[:3])+"]", "34", noColor)
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			tag, color := levelStyle(fmt.Sprint(i))
			return prefix + paint("["+tag+"]", color, noColor)
		},
		FormatFieldName: func(i interface{}) string { return fmt.Sprint(i) + ":" },
	}
}
