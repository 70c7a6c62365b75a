package tui

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	colorTile       = "#020617"
	colorGridDot    = "#1e293b"
	colorContour    = "#334155"
	colorRoute      = "#22d3ee"
	colorTitle      = "#ffffff"
	colorIdle       = "#64748b"
	colorChaosLabel = "#94a3b8"
	colorSeparator  = "#334155"
	colorCaption    = "#475569"
	colorPillIdle   = "#334155"
	colorSelected   = "#22d3ee"
)

// moduleColors maps palette names to the base of each module's gradient.
var moduleColors = map[string]string{
	"blue":    "#3b82f6",
	"violet":  "#8b5cf6",
	"emerald": "#10b981",
	"amber":   "#f59e0b",
	"cyan":    "#06b6d4",
	"rose":    "#f43f5e",
	"purple":  "#a855f7",
}

var moduleIcons = map[string]string{
	"database": "⛁",
	"globe":    "◍",
	"share":    "⋈",
	"zap":      "ϟ",
	"layers":   "≡",
	"target":   "◎",
	"chart":    "▥",
}

// resolveColor accepts a palette name or a #rrggbb literal.
func resolveColor(ref string) string {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if hex, ok := moduleColors[ref]; ok {
		return hex
	}
	if _, err := colorful.Hex(ref); err == nil {
		return ref
	}
	return colorIdle
}

func resolveIcon(ref string) string {
	if glyph, ok := moduleIcons[strings.ToLower(strings.TrimSpace(ref))]; ok {
		return glyph
	}
	return "■"
}

// fade blends fg towards bg; opacity 1 keeps fg, 0 yields bg.
func fade(fg, bg string, opacity float64) string {
	if opacity >= 1 {
		return fg
	}
	from, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	to, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	if opacity < 0 {
		opacity = 0
	}
	return to.BlendRgb(from, opacity).Clamped().Hex()
}
