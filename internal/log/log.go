package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// enabledSections lists the prefixes of "section" attributes whose records are printed
// below warning level
var enabledSections = []string{
	"surd",
	"parser",
	"factor",
	"solve",
	"backend",
	"server",
	"cli",
}

var level = new(slog.LevelVar)

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var (
	mu            sync.Mutex
	DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})
)

func init() {
	level.Set(slog.LevelWarn)
}

// SetLevel changes the level of every logger derived from DefaultLogger, including ones
// created before the call
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput redirects DefaultLogger to w, as JSON when asJSON is set.
// Loggers already derived from DefaultLogger keep their previous destination.
func SetOutput(w io.Writer, asJSON bool) {
	mu.Lock()
	defer mu.Unlock()
	var h slog.Handler = slog.NewTextHandler(w, LoggerOpts)
	if asJSON {
		h = slog.NewJSONHandler(w, LoggerOpts)
	}
	DefaultLogger = slog.New(&filteringHandler{underlying: h})
}

// Section returns a logger tagged with the given section
func Section(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return DefaultLogger.With("section", name)
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func wanted(section string) bool {
	return slices.ContainsFunc(enabledSections, func(prefix string) bool {
		return strings.HasPrefix(section, prefix)
	})
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn || len(f.sections) > 0 {
		return f.underlying.Handle(ctx, record)
	}
	wantSection := false
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = attr.Key == "section" && wanted(attr.Value.String())
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sections := slices.Clone(f.sections)
	for _, attr := range attrs {
		if attr.Key == "section" && wanted(attr.Value.String()) {
			sections = append(sections, attr.Value.String())
		}
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(attrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
