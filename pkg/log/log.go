package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the record encoder.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatConsole:
		return f, nil
	}
	return "", fmt.Errorf("invalid log format: %q", s)
}

// Logger is a named logger for one category.
type Logger struct {
	name string
}

// writerHolder wraps an io.Writer so that atomic.Value always stores the same
// concrete type, avoiding the "inconsistently typed value" panic when changing
// from *os.File to *bytes.Buffer (or any other writer) in tests or runtime config.
type writerHolder struct {
	w io.Writer
}

type backend struct {
	format Format
	core   zapcore.Core
}

var (
	// globalLevel is the threshold for categories without an override.
	globalLevel atomic.Int32

	// categoryLevels stores per-category thresholds.
	categoryLevels sync.Map // map[string]*atomic.Int32

	// loggers caches created named loggers.
	loggers sync.Map // map[string]*Logger

	// outputWriter holds the destination for all loggers (wrapped in writerHolder).
	outputWriter atomic.Value // writerHolder

	current atomic.Pointer[backend]

	sink = zapcore.Lock(outputProxy{})
)

func init() {
	globalLevel.Store(int32(LevelInfo))
	outputWriter.Store(writerHolder{w: os.Stderr})
	current.Store(newBackend(FormatJSON))
}

// outputProxy forwards to whatever writer SetOutput installed last.
type outputProxy struct{}

func (outputProxy) Write(p []byte) (int, error) {
	return outputWriter.Load().(writerHolder).w.Write(p)
}

func (outputProxy) Sync() error {
	if s, ok := outputWriter.Load().(writerHolder).w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:       "log_level",
		TimeKey:        "server_timestamp",
		MessageKey:     "log_message",
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// levelEncoder writes host level names instead of zap's.
func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(strings.ToLower(fromZap(l).String()))
}

// zap has no trace or critical level; the host levels are shifted so that
// INFO lines up with zap's InfoLevel.
func toZap(l Level) zapcore.Level {
	return zapcore.Level(int8(l) - int8(LevelInfo))
}

func fromZap(l zapcore.Level) Level {
	return Level(int8(l) + int8(LevelInfo))
}

func newBackend(format Format) *backend {
	var enc zapcore.Encoder
	if format == FormatConsole {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}

	host, _ := os.Hostname()
	core := zapcore.NewCore(enc, sink, zap.LevelEnablerFunc(func(zapcore.Level) bool { return true }))
	return &backend{
		format: format,
		core: core.With([]zapcore.Field{
			zap.String("server_host", host),
			zap.Int("server_pid", os.Getpid()),
		}),
	}
}

// ForCategory returns (and memoizes) a named logger for the given category.
func ForCategory(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	actual, _ := loggers.LoadOrStore(name, &Logger{name: name})
	return actual.(*Logger)
}

// SetLevel sets the global threshold.
func SetLevel(level Level) {
	if !level.Valid() {
		return
	}
	globalLevel.Store(int32(level))
}

// GetLevel returns the global threshold.
func GetLevel() Level {
	return Level(globalLevel.Load())
}

// SetCategoryLevel overrides the threshold of one category.
func SetCategoryLevel(name string, level Level) {
	if name == "" || !level.Valid() {
		return
	}
	val, _ := categoryLevels.LoadOrStore(name, &atomic.Int32{})
	val.(*atomic.Int32).Store(int32(level))
}

// ResetCategoryLevel drops the override of one category.
func ResetCategoryLevel(name string) {
	categoryLevels.Delete(name)
}

// ResetCategoryLevels drops every category override.
func ResetCategoryLevels() {
	categoryLevels.Range(func(k, _ any) bool {
		categoryLevels.Delete(k)
		return true
	})
}

// Enabled reports whether a record at level in category name would be written.
func Enabled(name string, level Level) bool {
	threshold := Level(globalLevel.Load())
	if val, ok := categoryLevels.Load(name); ok {
		threshold = Level(val.(*atomic.Int32).Load())
	}
	return level >= threshold
}

// SetOutput sets the output writer for all loggers, existing ones included.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	outputWriter.Store(writerHolder{w: w})
}

// SetFormat switches the record encoder.
func SetFormat(format Format) error {
	f, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	current.Store(newBackend(f))
	return nil
}

// CurrentFormat returns the active record encoder.
func CurrentFormat() Format {
	return current.Load().format
}

// Sync flushes the output writer when it supports it.
func Sync() error {
	return current.Load().core.Sync()
}

// Timestamp returns current time (exposed to allow deterministic overrides in tests).
var Timestamp = func() time.Time {
	return time.Now()
}

// Name returns the category of the logger.
func (l *Logger) Name() string {
	return l.name
}

// Enabled reports whether a record at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return Enabled(l.name, level)
}

// Log writes msg verbatim at level.
func (l *Logger) Log(level Level, msg string) {
	if !level.Valid() || !l.Enabled(level) {
		return
	}
	core := current.Load().core
	entry := zapcore.Entry{
		Level:   toZap(level),
		Time:    Timestamp(),
		Message: msg,
	}
	if ce := core.Check(entry, nil); ce != nil {
		ce.Write(zap.String("log_category", l.name))
	}
}

func (l *Logger) Trace(msg string)    { l.Log(LevelTrace, msg) }
func (l *Logger) Debug(msg string)    { l.Log(LevelDebug, msg) }
func (l *Logger) Info(msg string)     { l.Log(LevelInfo, msg) }
func (l *Logger) Warn(msg string)     { l.Log(LevelWarn, msg) }
func (l *Logger) Error(msg string)    { l.Log(LevelError, msg) }
func (l *Logger) Critical(msg string) { l.Log(LevelCritical, msg) }

// logf skips the Sprintf when the level is filtered out.
func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

func (l *Logger) Tracef(format string, args ...any)    { l.logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any)    { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)     { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)     { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any)    { l.logf(LevelError, format, args...) }
func (l *Logger) Criticalf(format string, args ...any) { l.logf(LevelCritical, format, args...) }
