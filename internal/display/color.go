// Package display renders the adhan-clock dashboard and tables for a terminal.
//
// Styling uses raw ANSI escape codes. NO_COLOR (https://no-color.org/) turns
// it off, FORCE_COLOR turns it on, and otherwise it follows whether stdout is
// a terminal.
package display

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	fgGray = "\033[90m"

	// clearScreen moves the cursor home and erases the display.
	clearScreen = "\033[H\033[2J"
)

var enabled = shouldEnable()

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal (including Cygwin ptys).
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the auto-detected color state.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

// Bold returns text rendered in bold.
func Bold(text string) string { return wrap(bold, text) }

// Dim returns text rendered faint.
func Dim(text string) string { return wrap(dim, text) }

// Red returns text rendered in red. Used for playback alerts.
func Red(text string) string { return wrap(red, text) }

// Green returns text rendered in green.
func Green(text string) string { return wrap(green, text) }

// Yellow returns text rendered in yellow.
func Yellow(text string) string { return wrap(yellow, text) }

// Cyan returns text rendered in cyan.
func Cyan(text string) string { return wrap(cyan, text) }

// Gray returns text rendered in gray (bright black).
func Gray(text string) string { return wrap(fgGray, text) }

// Accent marks the next prayer (cyan + bold).
func Accent(text string) string {
	if !enabled {
		return text
	}
	return bold + cyan + text + reset
}

// Current marks the prayer whose window contains now (green + bold).
func Current(text string) string {
	if !enabled {
		return text
	}
	return bold + green + text + reset
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}
