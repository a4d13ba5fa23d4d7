package omada

import (
	"github.com/sirupsen/logrus"
)

// Logger is the logging surface the client writes to. Supply your own
// implementation through ClientConfig.Logger to integrate with an existing
// logging setup, or leave it unset for a logrus-backed default.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggingLevel selects the verbosity of the default logger.
type LoggingLevel int

const (
	DisabledLevel LoggingLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// NewDefaultLogger returns a logrus-backed Logger at the given level.
// DisabledLevel returns a logger that discards everything.
func NewDefaultLogger(level LoggingLevel) Logger {
	if level == DisabledLevel {
		return &noopLogger{}
	}
	l := logrus.New()
	switch level {
	case DebugLevel:
		l.SetLevel(logrus.DebugLevel)
	case WarnLevel:
		l.SetLevel(logrus.WarnLevel)
	case ErrorLevel:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return &defaultLogger{l}
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string)                          {}
func (l *noopLogger) Info(msg string)                           {}
func (l *noopLogger) Warn(msg string)                           {}
func (l *noopLogger) Error(msg string)                          {}
func (l *noopLogger) Debugf(format string, args ...interface{}) {}
func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Warnf(format string, args ...interface{})  {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}

type defaultLogger struct {
	*logrus.Logger
}

func (l *defaultLogger) Debug(msg string) { l.Logger.Debug(msg) }
func (l *defaultLogger) Info(msg string)  { l.Logger.Info(msg) }
func (l *defaultLogger) Warn(msg string)  { l.Logger.Warn(msg) }
func (l *defaultLogger) Error(msg string) { l.Logger.Error(msg) }
