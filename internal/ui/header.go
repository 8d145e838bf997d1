package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Title   string // Demo or command name
	Tagline string // Optional one-line description
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 40

// RenderHeader renders a title line, optional tagline, and a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)

	var output strings.Builder

	output.WriteString(titleStyle.Render(info.Title))
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(MutedStyle().Render(info.Tagline))
		output.WriteString("\n")
	}

	output.WriteString(MutedStyle().Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the styled header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}

// StatusLine renders "<symbol> <text>" with the symbol coloured by success.
func StatusLine(success bool, text string) string {
	if success {
		return SuccessStyle().Render(SymbolSuccess) + " " + text
	}
	return ErrorStyle().Render(SymbolFail) + " " + text
}
