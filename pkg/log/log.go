// Package log provides the emulator's logging interface, backed by
// logrus so the core and the frontends share one structured logging
// story.
package log

import "github.com/sirupsen/logrus"

// Logger is the narrow logging surface used throughout the module.
// Components that take a Logger (the CPU, the frontends, the frame
// driver) depend on this interface rather than on logrus, so tests can
// substitute a silent implementation. The MMU and the cartridge loader
// use logrus directly.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger backed by a fresh logrus.Logger with a plain
// text formatter and no timestamps, matching the terse diagnostic
// output the rest of the module expects.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &logger{l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.Logger.Infof(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.Logger.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.Logger.Debugf(format, args...) }
