package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/headway/internal/config"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}

// ResolveInteractive applies an interactive mode to a probed terminal state.
func ResolveInteractive(mode string, probed bool) bool {
	switch mode {
	case config.ModeAlways:
		return true
	case config.ModeNever:
		return false
	default:
		return probed
	}
}

// ResolveColor applies a color mode. auto follows interactive unless
// NO_COLOR (or CLICOLOR=0) is set.
func ResolveColor(mode string, interactive bool) bool {
	switch mode {
	case config.ModeAlways:
		return true
	case config.ModeNever:
		return false
	default:
		return interactive && !termenv.EnvNoColor()
	}
}
