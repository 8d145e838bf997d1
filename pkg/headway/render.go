package headway

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/headway/internal/ui"
)

// BarWidth is the number of cells between the borders of every bar.
const BarWidth = 20

// Bar glyphs.
const (
	glyphFilled      = '█'
	glyphEmpty       = ' '
	glyphAbandoned   = 'X'
	glyphAnimated    = '░'
	glyphLeftBorder  = '▕'
	glyphRightBorder = '▏'
)

// glyphPartial steps from empty to full in eighths.
var glyphPartial = [9]rune{glyphEmpty, '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// brightnessSteps is the size of the grey ramp starting at palette entry 232.
const brightnessSteps = 24

// indexEpsilon absorbs float error when converting fractions to cell indices.
const indexEpsilon = 1e-9

// renderer turns aggregated nodes into bar lines.
type renderer struct {
	width     int
	color     bool
	strict    bool
	reference time.Time
	now       func() time.Time
}

// renderLine appends one line (without newline) for n to sb and reports
// whether any part of it animates.
func (r *renderer) renderLine(sb *strings.Builder, n *node) (animating bool) {
	c := n.aggregate()
	if !c.valid() {
		if r.strict {
			panic(fmt.Sprintf("headway: aggregated counts out of range: %+v", c))
		}
	}
	c = c.clamped()

	sb.WriteRune(glyphLeftBorder)
	if c.bounded {
		animating = r.renderBounded(sb, c)
	} else {
		r.renderAnimated(sb, 0, r.width)
		animating = true
	}
	sb.WriteRune(glyphRightBorder)

	r.renderSuffix(sb, n, c)
	return animating
}

func (r *renderer) renderBounded(sb *strings.Builder, c counts) (animating bool) {
	width := float64(r.width)
	boundsMult := 0.0
	if c.upper > 0 {
		boundsMult = c.lower / c.upper
	}

	filledPos := c.progress * boundsMult * width
	filled := r.index(filledPos)
	inProgressEnd := max(r.index((c.progress+c.inProgress)*boundsMult*width), filled)
	abandonedStart := max(r.index((1-c.abandoned*boundsMult)*width+indexEpsilon), inProgressEnd)

	sb.WriteString(strings.Repeat(string(glyphFilled), filled))
	if filled < abandonedStart {
		_, frac := math.Modf(filledPos)
		if step := int(math.Floor(frac * 8)); step > 0 {
			sb.WriteRune(glyphPartial[step])
			filled++
			inProgressEnd = max(inProgressEnd, filled)
		}
	}

	if filled < inProgressEnd {
		r.renderAnimated(sb, filled, inProgressEnd)
		animating = true
	}

	sb.WriteString(strings.Repeat(string(glyphEmpty), abandonedStart-inProgressEnd))

	if abandonedStart < r.width {
		if r.color {
			sb.WriteString(ui.Red)
		}
		sb.WriteString(strings.Repeat(string(glyphAbandoned), r.width-abandonedStart))
		if r.color {
			sb.WriteString(ui.Reset)
		}
	}
	return animating
}

// renderAnimated writes the shimmering ramp for cells [from, to). Without
// colour the cells are shaded so they stay distinct from finished work.
func (r *renderer) renderAnimated(sb *strings.Builder, from, to int) {
	if !r.color {
		sb.WriteString(strings.Repeat(string(glyphAnimated), to-from))
		return
	}

	t := r.now().Sub(r.reference).Seconds()
	for i := from; i < to; i++ {
		sb.WriteString(ui.Foreground256(232 + brightness(t, i)))
		sb.WriteRune(glyphFilled)
	}
	sb.WriteString(ui.Reset)
}

// brightness returns the grey ramp step for cell i at t seconds.
func brightness(t float64, i int) int {
	k := int(math.Floor((math.Sin(2*t+0.7*float64(i))*0.5 + 0.5) * brightnessSteps))
	return min(max(k, 0), brightnessSteps-1)
}

func (r *renderer) renderSuffix(sb *strings.Builder, n *node, c counts) {
	if n.isWeighted() {
		if p, ok := n.fraction(); ok {
			fmt.Fprintf(sb, " %d%%", int(math.Floor(p*100)))
		} else {
			sb.WriteString(" ?%")
		}
	} else {
		sb.WriteByte(' ')
		sb.WriteString(formatCount(math.Floor(c.progress * c.lower)))
		sb.WriteByte('/')
		if c.bounded {
			sb.WriteString(formatCount(c.upper))
		} else {
			sb.WriteByte('?')
		}
	}

	if msg := n.displayMessage(); msg != "" {
		sb.WriteByte(' ')
		sb.WriteString(msg)
	}
}

// index converts a cell position to an index clamped to [0, width].
func (r *renderer) index(pos float64) int {
	if math.IsNaN(pos) || pos <= 0 {
		return 0
	}
	return min(int(math.Floor(pos)), r.width)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
