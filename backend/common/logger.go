package common

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: RFC3339MilliZ,
	})
}

// SetupLogger applies the configured level.
func SetupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetupGinLog routes gin's own debug and error output through Logger.
func SetupGinLog() {
	gin.DefaultWriter = Logger.WriterLevel(logrus.DebugLevel)
	gin.DefaultErrorWriter = Logger.WriterLevel(logrus.ErrorLevel)
}

func SysLog(s string) {
	Logger.WithField("component", "sys").Info(s)
}

func SysError(s string) {
	Logger.WithField("component", "sys").Error(s)
}
