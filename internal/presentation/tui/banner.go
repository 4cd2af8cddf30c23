package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   _____ _                   _ _            `, "#fbbf24"},
	{`  / ____| |                 | (_)           `, "#f59e0b"},
	{` | (___ | |_ ___  _ __ _   _| |_ _ __   ___ `, "#f97316"},
	{`  \___ \| __/ _ \| '__| | | | | | '_ \ / _ \`, "#ef4444"},
	{`  ____) | || (_) | |  | |_| | | | | | |  __/`, "#e11d48"},
	{` |_____/ \__\___/|_|   \__, |_|_|_| |_|\___|`, "#be123c"},
	{`                        __/ |               `, "#9f1239"},
	{`                       |___/                `, "#881337"},
}

// PrintBanner writes the Storyline banner followed by the story title.
// Colors degrade to the terminal's profile (none when w is not a terminal).
func PrintBanner(w io.Writer, title string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if title != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, out.String("  "+title).Bold())
	}
	fmt.Fprintln(w)
}
