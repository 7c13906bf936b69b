package mylog

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	entry *log.Entry
}

func newStandardLogger(componentName string) Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	return standardLogger{
		entry: logger.WithField("component", componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...interface{}) {
	entry := l.entry
	if traceLabel != "" {
		entry = entry.WithField("aggregate", traceLabel)
	}
	entry.Log(toLevel(severity), fmt.Sprintf(format, a...))
}

func toLevel(severity Severity) log.Level {
	switch severity {
	case SeverityDebug:
		return log.DebugLevel
	case SeverityWarn:
		return log.WarnLevel
	case SeverityError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
