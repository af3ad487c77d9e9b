package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logStyles colors level labels with the CLI palette.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	levels := map[log.Level]lipgloss.Color{
		log.DebugLevel: colorDim,
		log.InfoLevel:  colorCyan,
		log.WarnLevel:  colorYellow,
		log.ErrorLevel: colorRed,
	}
	for level, color := range levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			MaxWidth(4).
			Foreground(color)
	}
	styles.Keys["elapsed"] = lipgloss.NewStyle().Foreground(colorGray)
	return styles
}

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	l.SetStyles(logStyles())
	return l
}

// progress logs the completion of a timed operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, and any
// extra key/value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

type loggerKey struct{}

// withLogger attaches l to ctx so pipeline stages share the command's
// logger settings.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
