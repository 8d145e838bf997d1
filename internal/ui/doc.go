// Package ui provides the terminal plumbing shared by the headway library
// and its demo CLI.
//
// # Terminal Probe
//
// IsTerminal reports whether a file is attached to a terminal, including
// Cygwin/MSYS pseudo terminals. The progress manager snapshots this once for
// stdout to choose between the overlay renderer and plain line output.
//
// # Escape Sequences
//
// The bar renderer writes a small fixed set of CSI sequences:
//
//	Foreground256(n) - ESC[38;5;nm, the grey animation ramp
//	Red              - ESC[31m, abandoned tails
//	Reset            - ESC[0m
//	CursorPrevLine   - ESC[NF, back to the top of the bar block
//	EraseDown        - ESC[0J, clear to the end of the screen
//
// # Styles
//
// The demo CLI styles its own status lines with Lip Gloss using the colour
// palette in colors.go. Use DisableColors() for --no-color.
package ui
