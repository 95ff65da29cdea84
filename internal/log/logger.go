// Package log is scribe's structured logger. The package-level functions log
// through a shared Logger; Configure replaces it. Output is produced by logrus.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"scribe/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
	mu      sync.RWMutex
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured log entries.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	min    logrus.Level
	file   *os.File
}

type options struct {
	out   io.Writer
	json  bool
	level string
	file  string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log output to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithLevel sets the minimum level ("debug", "info", "warn", "error").
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithFile appends log output to path in addition to stdout.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger writing to stdout unless overridden.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stdout, level: "info"}
	for _, opt := range opts {
		opt(o)
	}

	l := &Logger{fields: logrus.Fields{}}

	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			l.file = f
			out = io.MultiWriter(o.out, f)
		} else {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		}
	}

	base := logrus.New()
	base.SetOutput(out)
	// Filtering happens in output so that SetDebug applies to existing loggers.
	base.SetLevel(logrus.TraceLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		base.SetFormatter(&textFormatter{})
	}
	l.base = base

	l.min = logrus.InfoLevel
	if lvl, err := ParseLevel(o.level); err == nil {
		l.min = lvl
	}
	return l
}

// ParseLevel converts a level name into a logrus level.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return logrus.WarnLevel, nil
	case "":
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}

// Configure replaces the package-level logger and closes the log file of
// the one it replaces.
func Configure(opts ...Option) {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = NewLogger(opts...)
	if prev != nil {
		_ = prev.Close()
	}
}

// SetDebug enables debug output on every logger.
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	isDebug = debug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a child logger carrying additional fields.
func (l *Logger) With(fields ...Field) *Logger {
	child := &Logger{
		base:   l.base,
		min:    l.min,
		file:   l.file,
		fields: make(logrus.Fields, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for _, f := range fields {
		child.fields[f.Key] = f.Value
	}
	return child
}

// WithError attaches err and, for application errors, its kind and subject.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields = append(fields, F("param", cfgErr.Param()))
	}
	var encErr *errors.EncodingError
	if errors.As(err, &encErr) && encErr.Encoding() != "" {
		fields = append(fields, F("encoding", encErr.Encoding()))
	}
	var storeErr *errors.StoreError
	if errors.As(err, &storeErr) && storeErr.Document() != "" {
		fields = append(fields, F("document", storeErr.Document()))
	}
	var protoErr *errors.ProtocolError
	if errors.As(err, &protoErr) && protoErr.Channel() != "" {
		fields = append(fields, F("channel", protoErr.Channel()))
	}
	return l.With(fields...)
}

// WithContext is reserved for request-scoped fields; it currently returns l.
func (l *Logger) WithContext(_ context.Context) *Logger {
	return l
}

func (l *Logger) output(level logrus.Level, msg string) {
	if level > l.min && !(level == logrus.DebugLevel && debugEnabled()) {
		return
	}
	entry := l.base.WithFields(l.fields)
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string) { l.output(logrus.InfoLevel, msg) }

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.output(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string) { l.output(logrus.WarnLevel, msg) }

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.output(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs at error level.
func (l *Logger) Error(msg string) { l.output(logrus.ErrorLevel, msg) }

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.output(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string) { l.output(logrus.DebugLevel, msg) }

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.output(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	current().output(logrus.InfoLevel, sprintf(format, args...))
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	current().output(logrus.InfoLevel, sprintf(format, args...))
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	current().output(logrus.DebugLevel, withArgs(msg, args))
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().output(logrus.DebugLevel, sprintf(format, args...))
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	current().output(logrus.WarnLevel, withArgs(msg, args))
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().output(logrus.WarnLevel, sprintf(format, args...))
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	current().output(logrus.ErrorLevel, withArgs(msg, args))
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().output(logrus.ErrorLevel, sprintf(format, args...))
}

// LogWithFields returns the package logger carrying fields.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger carrying err.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	current().WithError(err).output(logrus.ErrorLevel, msg)
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func withArgs(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg+": %v", args...)
}

// textFormatter renders "[time] LEVEL: message key=value ...".
type textFormatter struct{}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(entry.Level.String()),
		entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
