package ui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Fixed sequences used by the renderer.
var (
	// Red starts the abandoned-tail colour.
	Red = termenv.CSI + termenv.ANSIRed.Sequence(false) + "m"
	// Reset clears all attributes.
	Reset = termenv.CSI + termenv.ResetSeq + "m"
	// EraseDown clears from the cursor to the end of the screen.
	EraseDown = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 0)
)

// Foreground256 returns the sequence selecting 256-colour palette entry n.
func Foreground256(n int) string {
	return termenv.CSI + termenv.ANSI256Color(n).Sequence(false) + "m"
}

// CursorPrevLine moves the cursor up n lines to column 1.
func CursorPrevLine(n int) string {
	return termenv.CSI + fmt.Sprintf(termenv.CursorPreviousLineSeq, n)
}
