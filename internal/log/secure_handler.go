package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// personalKeys contains attribute keys whose values are original personal
// data from the snapshot. They are always masked.
var personalKeys = map[string]bool{
	"original":    true,
	"real":        true,
	"real_name":   true,
	"realname":    true,
	"member_name": true,
	"membername":  true,
	"member_id":   true,
	"memberid":    true,
	"candidate":   true,
	"team_name":   true,
	"org_segment": true,
	"email":       true,
	"phone":       true,
}

// personalPatterns match values that look like contact details, whatever
// their key.
var personalPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),

	// International or bracketed phone numbers
	regexp.MustCompile(`^(\+|\()[0-9][0-9 ()-]{6,}[0-9]$`),

	// Session cookies saved with the page
	regexp.MustCompile(`(?i)^(phpsessid|laravel_session|xsrf-token)=`),
}

// MaskValue is the string used to replace personal values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler so that original names, member IDs,
// and contact details never reach log output. The anonymized values
// (replacements) are logged as-is.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes masked and added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursing into groups.
func (h *SecureHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			masked[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	keyLower := strings.ToLower(a.Key)
	if personalKeys[keyLower] || containsPersonalKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isPersonalValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// containsPersonalKeyword checks if the key refers to original data.
// "name" alone is not a keyword: step and rule names are logged under it.
func containsPersonalKeyword(key string) bool {
	keywords := []string{"original", "real_", "member_name", "member_id", "email", "phone"}

	for _, keyword := range keywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isPersonalValue checks if a value matches a contact-detail pattern.
func isPersonalValue(value string) bool {
	for _, pattern := range personalPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger creates a text slog.Logger that masks personal data.
// verbose selects slog.LevelDebug; otherwise only warnings and errors
// are written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger creates a JSON slog.Logger that masks personal data.
// It is used when the run report itself is JSON, so both streams can be
// parsed by the same tooling.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
