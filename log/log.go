// Package log writes lyra's diagnostics to a dated file under the logs directory.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// logger is nil while logging is off.
var logger *logrus.Logger

// Setup opens today's log file when logs.write is set. Otherwise every
// call in this package is a no-op.
func Setup() error {
	logger = nil
	if !viper.GetBool(key.LogsWrite) {
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// Enabled reports whether Setup opened a log file.
func Enabled() bool {
	return logger != nil
}

// Writer returns a writer that logs each line at debug level. Close it when done.
func Writer() io.WriteCloser {
	if logger == nil {
		return discard{}
	}
	return logger.WriterLevel(logrus.DebugLevel)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Close() error                { return nil }

func Error(args ...any) {
	if logger != nil {
		logger.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}

func Warnf(format string, args ...any) {
	if logger != nil {
		logger.Warnf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

// Tracef logs per-tick detail such as partial sink writes.
func Tracef(format string, args ...any) {
	if logger != nil {
		logger.Tracef(format, args...)
	}
}
