// Package log provides the logging interface used by tmpfs sandboxes.
//
// Sandboxes accept any implementation of [Logger]. Use [Noop] to disable
// logging (this is the default when no logger is configured).
//
// To send sandbox logs through logrus:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	fs := tmpfs.NewT(t, tmpfs.Config{Logger: log.NewLogrus(logrus.NewEntry(l))})
package log

import (
	"github.com/sirupsen/logrus"

	"github.com/slok/tmpfs/internal/log"
	loglogrus "github.com/slok/tmpfs/internal/log/logrus"
)

// Logger is the interface that loggers must implement to be used by a sandbox.
type Logger = log.Logger

// Kv is a helper type for structured logging key-value pairs.
type Kv = log.Kv

// Noop is a logger that discards all log output. This is the default logger
// when none is provided in the sandbox configuration.
var Noop = log.Noop

// NewLogrus adapts a logrus entry into a [Logger].
func NewLogrus(e *logrus.Entry) Logger {
	return loglogrus.NewLogrus(e)
}
