package categories

import (
	"strings"
	"unicode/utf16"

	"github.com/charmbracelet/lipgloss"
)

// palette is the rotation custom categories draw their color from.
var palette = []string{
	"from-indigo-500 to-purple-600",
	"from-cyan-500 to-blue-600",
	"from-green-500 to-teal-600",
	"from-yellow-500 to-orange-600",
	"from-red-500 to-pink-600",
	"from-purple-500 to-indigo-600",
	"from-blue-500 to-cyan-600",
	"from-teal-500 to-green-600",
	"from-orange-500 to-red-600",
	"from-pink-500 to-purple-600",
	"from-emerald-500 to-cyan-600",
	"from-violet-500 to-purple-600",
	"from-sky-500 to-blue-600",
	"from-lime-500 to-green-600",
	"from-amber-500 to-orange-600",
}

// Hex values for the 500 shade of each color family used in descriptors.
var shade500 = map[string]string{
	"amber":   "#f59e0b",
	"blue":    "#3b82f6",
	"cyan":    "#06b6d4",
	"emerald": "#10b981",
	"gray":    "#6b7280",
	"green":   "#22c55e",
	"indigo":  "#6366f1",
	"lime":    "#84cc16",
	"orange":  "#f97316",
	"pink":    "#ec4899",
	"purple":  "#a855f7",
	"red":     "#ef4444",
	"sky":     "#0ea5e9",
	"teal":    "#14b8a6",
	"violet":  "#8b5cf6",
	"yellow":  "#eab308",
}

// Palette returns a copy of the custom category palette.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

// nameHash is a 32-bit rolling hash over the UTF-16 code units of s.
// Overflow wraps.
func nameHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(unit)
	}
	return h
}

// ColorFor maps a category name to a palette descriptor. The same name
// always gets the same color.
func ColorFor(name string) string {
	h := int64(nameHash(strings.TrimSpace(name)))
	if h < 0 {
		h = -h
	}
	return palette[h%int64(len(palette))]
}

// GradientFor builds the full gradient class for a palette descriptor.
func GradientFor(color string) string {
	return "bg-gradient-to-r " + color
}

// TerminalColor returns the color a descriptor starts from, for rendering.
// Descriptors it does not recognize come back gray.
func TerminalColor(descriptor string) lipgloss.Color {
	for _, part := range strings.Fields(descriptor) {
		if !strings.HasPrefix(part, "from-") {
			continue
		}
		family := strings.TrimPrefix(part, "from-")
		if i := strings.LastIndex(family, "-"); i > 0 {
			family = family[:i]
		}
		if hex, ok := shade500[family]; ok {
			return lipgloss.Color(hex)
		}
	}
	return lipgloss.Color(shade500["gray"])
}
