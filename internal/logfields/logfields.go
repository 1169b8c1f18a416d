package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyRule       = "rule"
	KeySidebar    = "sidebar"
	KeyRoute      = "route"
	KeyLocale     = "locale"
	KeyDigest     = "digest"
	KeyRenderID   = "render_id"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Rule(r string) slog.Attr          { return slog.String(KeyRule, r) }
func Sidebar(id string) slog.Attr      { return slog.String(KeySidebar, id) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Locale(l string) slog.Attr        { return slog.String(KeyLocale, l) }
func Digest(d string) slog.Attr        { return slog.String(KeyDigest, d) }
func RenderID(id string) slog.Attr     { return slog.String(KeyRenderID, id) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
