package headway

import "math"

// counts is the aggregated view of a node. progress, inProgress and
// abandoned are fractions of lower. upper is only meaningful when bounded;
// an unbounded node is indeterminate.
type counts struct {
	progress   float64
	inProgress float64
	abandoned  float64
	lower      float64
	upper      float64
	bounded    bool
}

// epsilon is the slack allowed when checking that fractions sum to at most one.
const epsilon = 1e-4

// valid reports whether c satisfies the aggregation invariants.
func (c counts) valid() bool {
	for _, v := range []float64{c.progress, c.inProgress, c.abandoned} {
		if math.IsNaN(v) || v < 0 || v > 1+epsilon {
			return false
		}
	}
	if c.progress+c.inProgress+c.abandoned > 1+epsilon {
		return false
	}
	if c.bounded && c.lower > c.upper+epsilon {
		return false
	}
	return true
}

// clamped returns c with every fraction forced into range.
func (c counts) clamped() counts {
	c.progress = clamp01(c.progress)
	c.inProgress = clamp01(c.inProgress)
	c.abandoned = clamp01(c.abandoned)
	if over := c.progress + c.inProgress + c.abandoned - 1; over > 0 {
		c.inProgress = math.Max(0, c.inProgress-over)
		if over = c.progress + c.inProgress + c.abandoned - 1; over > 0 {
			c.abandoned = math.Max(0, c.abandoned-over)
		}
	}
	if c.bounded && c.lower > c.upper {
		c.lower = c.upper
	}
	return c
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// aggregate computes the counts for the subtree rooted at n.
func (n *node) aggregate() counts {
	if n.nested == nil {
		return n.aggregateLeaf()
	}
	if n.nested.kind == splitSummed {
		return n.aggregateSummed()
	}
	return n.aggregateWeighted()
}

func (n *node) aggregateLeaf() counts {
	if n.hasLength {
		length := float64(n.length)
		if n.length == 0 {
			var c counts
			c.bounded = true
			if n.lifecycle == completed {
				c.progress = 1
			}
			if n.lifecycle == abandoned {
				c.abandoned = 1
			}
			return c
		}

		pos := float64(min(n.position, n.length))
		c := counts{
			progress: pos / length,
			lower:    length,
			upper:    length,
			bounded:  true,
		}
		if n.lifecycle == abandoned {
			c.abandoned = (length - pos) / length
		}
		return c
	}

	// Unknown length.
	pos := float64(n.position)
	switch {
	case n.lifecycle == inProgress:
		return counts{progress: 1, lower: pos}
	case n.lifecycle == abandoned && n.position == 0:
		return counts{abandoned: 1, bounded: true}
	default:
		// Once ended, the final position becomes the length.
		return counts{progress: 1, lower: pos, upper: pos, bounded: true}
	}
}

// aggregateWeighted handles both weighted and sized splits: each child
// contributes its weight (a fraction or an item count) to the parent.
func (n *node) aggregateWeighted() counts {
	var total counts
	total.bounded = true

	for i, child := range n.nested.bars {
		w := n.nested.weights[i]
		c := child.aggregate()

		if !c.bounded {
			if c.lower == 0 {
				// Nothing has happened yet. Sequential stages that have not
				// started usually have no length, so count them as empty.
				c.progress = 0
				c.inProgress = 0
			} else {
				c.progress = 0
				c.inProgress = 1 - c.abandoned
			}
		}

		total.lower += w
		total.upper += w
		total.progress += c.progress * w
		total.inProgress += c.inProgress * w
		total.abandoned += c.abandoned * w
	}

	switch n.nested.kind {
	case splitWeighted:
		total.lower = math.Max(total.lower, 1)
		total.upper = math.Max(total.upper, 1)
	case splitSized:
		if n.hasLength {
			total.lower = math.Max(total.lower, float64(n.length))
			total.upper = math.Max(total.upper, float64(n.length))
		}
	}

	return total.normalized()
}

func (n *node) aggregateSummed() counts {
	var total counts
	total.bounded = true

	for _, child := range n.nested.bars {
		c := child.aggregate()

		if c.progress+c.inProgress+c.abandoned > 0 && !c.bounded {
			total.bounded = false
		}
		total.lower += c.lower
		if c.bounded {
			total.upper += c.upper
		} else {
			total.upper += c.lower
		}

		total.progress += c.progress * c.lower
		total.inProgress += c.inProgress * c.lower
		total.abandoned += c.abandoned * c.lower
	}

	if n.hasLength {
		length := float64(n.length)
		total.lower = math.Max(total.lower, length)
		if length >= total.lower && !total.bounded {
			total.bounded = true
			total.upper = length
		}
		total.upper = math.Max(total.upper, length)
	}

	if !total.bounded {
		total.upper = 0
	}
	return total.normalized()
}

// normalized turns the weighted sums into fractions of lower.
func (c counts) normalized() counts {
	if c.lower > 0 {
		c.progress /= c.lower
		c.inProgress /= c.lower
		c.abandoned /= c.lower
	}
	return c
}

// fraction returns the filled share of the bar, or false if indeterminate.
func (n *node) fraction() (float64, bool) {
	c := n.aggregate()
	if !c.bounded {
		return 0, false
	}
	if c.upper <= 0 {
		return 0, true
	}
	return clamp01(c.progress * c.lower / c.upper), true
}

// displayMessage returns the message of the first unfinished node that has
// one or, if everything is finished, of the last finished node that has one.
func (n *node) displayMessage() string {
	var msg string
	allDone := n.visitCompleted(func(done bool, b *node) {
		if !done && msg == "" {
			msg = b.message
		}
	})
	if allDone {
		n.visitCompleted(func(_ bool, b *node) {
			if b.message != "" {
				msg = b.message
			}
		})
	}
	return msg
}
