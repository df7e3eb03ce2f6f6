// Package logging builds the process logger.
package logging

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Debug lowers the level to Debug. Otherwise only warnings and errors are logged.
	Debug bool

	// File, if set, receives logs through a rotating writer instead of Stderr.
	File string

	// Stderr is the fallback destination.
	Stderr io.Writer
}

// New returns a configured logger and a closer for any file it opened.
func New(opts Options) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: opts.File == "",
		FullTimestamp:    true,
	})

	level := logrus.WarnLevel
	if opts.Debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(lj)
		return log, lj
	}

	if opts.Stderr != nil {
		log.SetOutput(opts.Stderr)
	}
	return log, nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying log.
func NewContext(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored by NewContext, or the standard logger.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}
