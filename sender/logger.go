package sender

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// restyLogger routes resty's printf-style diagnostics into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log(slog.LevelError, format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log(slog.LevelWarn, format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log(slog.LevelDebug, format, v...)
}

func (l restyLogger) log(level slog.Level, format string, v ...any) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	l.logger.Log(context.Background(), level, msg, "component", "resty")
}
