// SPDX-License-Identifier: MIT
//
// Package logging builds the logrus logger of the roadflow binary: text
// output with full timestamps to stdout, mirrored to a rotating file when one
// is configured.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/katalvlaran/roadflow/config"
)

// TimestampFormat is used by every text formatter this package installs.
const TimestampFormat = "2006-01-02 15:04:05"

// Setup returns a new logger configured from cfg. The returned closer
// releases the log file; it is a no-op without one.
func Setup(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	return SetupTo(os.Stdout, cfg)
}

// SetupTo is Setup with console output going to w.
func SetupTo(w io.Writer, cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})

	var closer io.Closer = nopCloser{}
	out := w
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out = io.MultiWriter(w, file)
		closer = file
	}
	l.SetOutput(out)

	if cfg.File != "" {
		l.Infof("Logging initialized: file=%s, level=%s", cfg.File, level)
	}

	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
