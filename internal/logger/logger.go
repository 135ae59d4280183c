package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a configured logrus.Logger. JSON output is used to keep logs
// structured. An explicit LOG_LEVEL wins over the environment-based default.
func New(env, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(env, level))
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	return log
}

func parseLevel(env, level string) logrus.Level {
	if level != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			return parsed
		}
	}
	if strings.ToLower(env) == "local" || strings.ToLower(env) == "dev" {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
