package log

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

const DefaultLoggerFlag = log.Ldate | log.Ltime

var (
	defaultLogger = New(os.Stdout, "", DefaultLoggerFlag, LogLevelInfo)
	mu            sync.RWMutex
)

type LogLevel int32

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = map[LogLevel]string{
	LogLevelError: "error",
	LogLevelWarn:  "warn",
	LogLevelInfo:  "info",
	LogLevelDebug: "debug",
	LogLevelTrace: "trace",
}

func (level LogLevel) String() string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel parses a log level string into a LogLevel.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLogLevel(level string) (LogLevel, error) {
	for l, name := range levelNames {
		if name == level {
			return l, nil
		}
	}
	return LogLevelError, fmt.Errorf("unknown log level: %s", level)
}

// Logger writes one JSON object per line. Loggers derived with With share
// the level of their parent, so SetLevel affects all of them.
type Logger struct {
	logger *log.Logger
	level  *atomic.Int32
	fields map[string]interface{}
}

func New(out io.Writer, prefix string, flag int, level LogLevel) *Logger {
	l := &Logger{
		logger: log.New(out, prefix, flag),
		level:  new(atomic.Int32),
	}
	l.level.Store(int32(level))
	return l
}

// With returns a logger that adds key to every entry, e.g. the session a
// message is about.
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{logger: l.logger, level: l.level, fields: fields}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *Logger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if level > l.Level() {
		return
	}
	entry := make(map[string]interface{}, len(l.fields)+2)
	for k, v := range l.fields {
		entry[k] = v
	}
	entry["level"] = level.String()
	entry["msg"] = fmt.Sprintf(format, args...)

	msgBytes, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf(`{"level":"error","msg":"unencodable log entry: %v"}`, err)
		return
	}
	l.logger.Print(string(msgBytes))
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LogLevelError, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LogLevelWarn, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LogLevelInfo, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LogLevelDebug, format, args...) }
func (l *Logger) Trace(format string, args ...interface{}) { l.logf(LogLevelTrace, format, args...) }

// SetDefaultLogger replaces the logger behind the package-level functions.
func SetDefaultLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetLevel changes the level of the default logger and everything derived from it.
func SetLevel(level LogLevel) {
	Default().SetLevel(level)
	Debug("Log level set to %s", level)
}

func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// With derives a logger from the default one.
func With(key string, value interface{}) *Logger {
	return Default().With(key, value)
}

func Error(format string, args ...interface{}) { Default().Error(format, args...) }
func Warn(format string, args ...interface{})  { Default().Warn(format, args...) }
func Info(format string, args ...interface{})  { Default().Info(format, args...) }
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }
func Trace(format string, args ...interface{}) { Default().Trace(format, args...) }
