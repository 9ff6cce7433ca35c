package term

import (
	"image/color"

	"github.com/rs/zerolog"
)

// Config holds the construction-time inputs to Open. Parsing these
// values from a config file or CLI flags is an external collaborator's
// job; Config only carries the parsed result.
type Config struct {
	// Palette is the 256-entry indexed color table. A zero value leaves
	// DefaultPalette in effect.
	Palette *[256]color.RGBA

	DefaultFg     color.Color
	DefaultBg     color.Color
	DefaultCursor color.Color

	// MaxScrollback bounds retained history rows; <= 0 disables
	// scrollback growth entirely.
	MaxScrollback int

	// GlyphCacheCapacity sizes the renderer-side glyph LRU. Terminal
	// itself neither owns the cache nor reads this field; it is carried
	// for callers that construct a rendercache.Cache alongside the
	// terminal.
	GlyphCacheCapacity int

	// Logger receives structured diagnostics for malformed/unknown
	// sequences. Defaults to a no-op logger: library code must stay
	// silent unless a host explicitly wires a sink.
	Logger zerolog.Logger
}

// DefaultConfig returns a Config with an 80x24-appropriate scrollback and
// a silent logger.
func DefaultConfig() Config {
	return Config{
		MaxScrollback:      1000,
		GlyphCacheCapacity: 512,
		Logger:             zerolog.Nop(),
	}
}
