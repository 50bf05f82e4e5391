package display

import "strconv"

// Color is an ANSI foreground color.
type Color int

const (
	Black Color = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const reset = "\x1b[0m"

// Colorize wraps s in the escape sequence for c.
func Colorize(s string, c Color) string {
	if s == "" {
		return s
	}
	return "\x1b[" + strconv.Itoa(int(c)) + "m" + s + reset
}
