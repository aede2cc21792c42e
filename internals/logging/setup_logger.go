package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Options selects the level ("debug", "info", "warn", "error") and the format
// ("text" or "json") of the process logger.
type Options struct {
	Level  string
	Format string
	Prefix string
}

var formatters = map[string]log.Formatter{
	"json": log.JSONFormatter,
	"text": log.TextFormatter,
}

// Setup builds a charmbracelet handler writing to w, wraps it in a slog.Logger
// and installs that as the slog default.
func Setup(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	formatter, ok := formatters[strings.ToLower(opts.Format)]
	if !ok {
		return nil, fmt.Errorf("invalid log format %q, use text or json", opts.Format)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger, nil
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	levelColors := map[log.Level]lipgloss.AdaptiveColor{
		log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
		log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
		log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
		log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
	}
	for level, c := range levelColors {
		s.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			MaxWidth(5).
			Foreground(c)
	}
	s.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	s.Values["error"] = lipgloss.NewStyle().Bold(true)
	return s
}
