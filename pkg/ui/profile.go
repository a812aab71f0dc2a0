package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// DetectProfile returns the color profile of the host terminal, derived from
// $COLORTERM and $TERM. It honors $NO_COLOR: when that is set, the returned
// profile carries no color at all. The runtime itself never recolors view
// strings; this helper exists for styling layers built on top.
func DetectProfile() termenv.Profile {
	return termenv.EnvColorProfile()
}

// HasDarkBackground reports whether the terminal background is dark. It
// first consults $COLORFGBG, which some terminals set to "fg;bg" color
// numbers, and otherwise falls back to querying the terminal.
func HasDarkBackground() bool {
	if v := os.Getenv("COLORFGBG"); v != "" {
		if bg, ok := colorfgbgBackground(v); ok {
			// 0-6 are the dark base colors and 8 is bright black; 7 and
			// everything above are light.
			return bg <= 6 || bg == 8
		}
	}
	return termenv.HasDarkBackground()
}

// colorfgbgBackground extracts the background color number from a $COLORFGBG
// value such as "15;0" or "15;default;0".
func colorfgbgBackground(v string) (int, bool) {
	fields := strings.Split(v, ";")
	last := fields[len(fields)-1]
	bg, err := strconv.Atoi(last)
	if err != nil {
		return 0, false
	}
	return bg, true
}
