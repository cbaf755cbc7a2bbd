package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger configures the standard logrus logger. With a log file set,
// output is JSON through a rotating writer; otherwise text on stderr.
func SetupLogger(cfg LogConfig) *logrus.Logger {
	l := logrus.StandardLogger()
	if cfg.File != "" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetOutput(os.Stderr)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		l.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}
