package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements ports.Logger on top of logrus.
type Logger struct {
	entry *logrus.Logger
}

// NewStd creates a Logger writing to stderr. Verbose enables debug and info
// output; otherwise only warnings and errors are printed.
func NewStd(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// New creates a Logger writing text records to out.
func New(out io.Writer, verbose bool) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose, FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &Logger{entry: l}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.entry.WithFields(fields).WithError(err).Error(msg)
}
