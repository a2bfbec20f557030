package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Laplace ASCII banner and the version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                _                 ", "#38bdf8"},
		{"| |    __ _ _ __ | | __ _  ___ ___  ", "#22d3ee"},
		{"| |   / _` | '_ \\| |/ _` |/ __/ _ \\ ", "#2dd4bf"},
		{"| |__| (_| | |_) | | (_| | (_|  __/ ", "#34d399"},
		{"|_____\\__,_| .__/|_|\\__,_|\\___\\___| ", "#4ade80"},
		{"           |_|                      ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  s-domain explorer v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
