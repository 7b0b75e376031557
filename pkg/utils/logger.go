package utils

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// GetLogger returns the shared application logger.
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return logger
}

// ConfigureLogger applies the configured level and format to the shared
// logger. Unknown values keep the defaults.
func ConfigureLogger(level, format string) {
	l := GetLogger()

	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(parsed)
	}

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
