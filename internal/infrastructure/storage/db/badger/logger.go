package dbbadger

import (
	log "github.com/sirupsen/logrus"
)

// Logger forwards badger's logs to logrus, demoting info messages to debug.
type Logger struct {
	entry *log.Entry
}

func NewLogger() *Logger {
	return &Logger{log.WithField("module", "badger")}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}
