package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyBlock      = "block"
	KeyParent     = "parent"
	KeyCategory   = "category"
	KeyPage       = "page"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Block(name string) slog.Attr     { return slog.String(KeyBlock, name) }
func Parent(name string) slog.Attr    { return slog.String(KeyParent, name) }
func Category(name string) slog.Attr  { return slog.String(KeyCategory, name) }
func Page(fileName string) slog.Attr  { return slog.String(KeyPage, fileName) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Path(path string) slog.Attr      { return slog.String(KeyPath, path) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
