package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// InitLogger configures the shared Logger. The level comes from LOG_LEVEL
// and falls back to info.
func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)
	Logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.AddHook(&appNameHook{appName})
}

// SetLogLevel lets config override the level once it has been loaded.
func SetLogLevel(level string) {
	if level == "" {
		return
	}
	Logger.SetLevel(parseLevel(level))
}

func parseLevel(raw string) logrus.Level {
	levelStr := strings.ToLower(strings.TrimSpace(raw))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
		return logrus.InfoLevel
	}
	return level
}
