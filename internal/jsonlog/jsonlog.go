package jsonlog

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level uint8

// "enum" that represents the log levels
const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

// convert the log level to a string
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelOff:
		return "OFF"
	default:
		return ""
	}
}

// ParseLevel maps "info", "error", "fatal" and "off" (any case) to a Level.
func ParseLevel(s string) (Level, bool) {
	for l := LevelInfo; l <= LevelOff; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, true
		}
	}
	return LevelInfo, false
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		// above anything zap can emit
		return zapcore.FatalLevel + 1
	}
}

// Logger writes one JSON object per line: level, time, message, the optional
// properties and, from ERROR up, a stack trace.
type Logger struct {
	zap  *zap.Logger
	exit func(code int)
}

func New(out io.Writer, level Level) *Logger {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		TimeKey:        "time",
		MessageKey:     "message",
		StacktraceKey:  "trace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	// zapcore.AddSync + Lock keeps concurrent writes to out from interleaving
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), level.zapLevel())

	return &Logger{
		// fatal entries are written by zap, the process exit is ours
		zap:  zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel), zap.WithFatalHook(keepRunning{})),
		exit: os.Exit,
	}
}

// methods for writing log entries at different levels

func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.zap.Info(message, fields(properties)...)
}

func (l *Logger) PrintError(err error, properties map[string]string) {
	l.zap.Error(err.Error(), fields(properties)...)
}

// logs the error and exit the process
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.zap.Fatal(err.Error(), fields(properties)...)
	l.exit(1)
}

// satisfies the io.Writer interface. Writes a log entry at the Error Level
// with no properties, so http.Server.ErrorLog can point here
func (l *Logger) Write(message []byte) (n int, err error) {
	l.zap.Error(strings.TrimSpace(string(message)))
	return len(message), nil
}

// flushes any buffered entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// zap replaces a WriteThenNoop hook with os.Exit, this one really does nothing
type keepRunning struct{}

func (keepRunning) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

func fields(properties map[string]string) []zap.Field {
	if len(properties) == 0 {
		return nil
	}
	return []zap.Field{zap.Any("properties", properties)}
}
