package headway

import (
	"fmt"
	"iter"
	"math"
)

// Weighted vends children that each own a fraction of the parent bar.
// A Weighted is not safe for concurrent Take calls; the children it returns
// are ordinary bars and may be used from any goroutine.
type Weighted struct {
	bar   *Bar
	taken float64
}

// Take adds a child representing fraction of the parent. fraction must be
// finite and within [0, 1]. If the fractions taken add up to more than one,
// they are scaled down to fill the parent exactly.
func (w *Weighted) Take(fraction float64) *Bar {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		panic(fmt.Sprintf("headway: weighted fraction must be finite, got %v", fraction))
	}
	if fraction < 0 {
		panic(fmt.Sprintf("headway: weighted fraction must be non-negative, got %v", fraction))
	}
	if fraction > 1 {
		panic(fmt.Sprintf("headway: weighted fraction must be at most 1, got %v", fraction))
	}

	child := w.bar.child(fraction, nil)
	w.taken += fraction
	return child
}

// Remaining adds a child representing whatever fraction has not been taken.
// It panics if the parent has already been overcommitted.
func (w *Weighted) Remaining() *Bar {
	// Small float error is tolerated.
	if w.taken > 1.01 {
		panic(fmt.Sprintf("headway: no remaining part of the bar; %v%% has already been taken", w.taken*100))
	}
	return w.Take(max(0, 1-w.taken))
}

// Bar returns the parent bar.
func (w *Weighted) Bar() *Bar { return w.bar }

// Finish ends the parent bar. Its progress still comes from the children.
func (w *Weighted) Finish() { w.bar.Finish() }

// Abandon ends the parent bar as abandoned.
func (w *Weighted) Abandon() { w.bar.Abandon() }

// Close releases the parent bar.
func (w *Weighted) Close() error { return w.bar.Close() }

// Sized vends children that each stand for a fixed number of the parent's
// steps. A Sized is not safe for concurrent Take calls.
type Sized struct {
	bar   *Bar
	taken int
}

// Take adds a child standing for count steps of the parent. The child's
// length is set to count, but a full child always maps to count parent steps
// whatever its length.
func (s *Sized) Take(count int) *Bar {
	if count < 0 {
		panic(fmt.Sprintf("headway: negative sized count %d", count))
	}

	child := s.bar.child(float64(count), func(c *node) {
		c.length = count
		c.hasLength = true
	})
	s.taken += count
	return child
}

// Remaining adds a child for the parent's steps not yet taken. It panics if
// the parent has no length or if more than its length has been taken.
func (s *Sized) Remaining() *Bar {
	length, ok := s.bar.Length()
	if !ok {
		panic("headway: Remaining needs the parent bar to have a length")
	}
	if s.taken > length {
		panic(fmt.Sprintf("headway: no remaining part of the bar; it has length %d and %d has already been taken", length, s.taken))
	}
	return s.Take(length - s.taken)
}

// Bar returns the parent bar.
func (s *Sized) Bar() *Bar { return s.bar }

// Finish ends the parent bar. Its progress still comes from the children.
func (s *Sized) Finish() { s.bar.Finish() }

// Abandon ends the parent bar as abandoned.
func (s *Sized) Abandon() { s.bar.Abandon() }

// Close releases the parent bar.
func (s *Sized) Close() error { return s.bar.Close() }

// Summed vends children whose lengths and progress add up to the parent's.
// Take is safe to call from many goroutines.
type Summed struct {
	bar *Bar
}

// Take adds a child with no preset length.
func (s *Summed) Take() *Bar {
	return s.bar.child(0, nil)
}

// Bar returns the parent bar.
func (s *Summed) Bar() *Bar { return s.bar }

// Finish ends the parent bar. Its progress still comes from the children.
func (s *Summed) Finish() { s.bar.Finish() }

// Abandon ends the parent bar as abandoned.
func (s *Summed) Abandon() { s.bar.Abandon() }

// Close releases the parent bar.
func (s *Summed) Close() error { return s.bar.Close() }

// SplitEach splits b into one child per element of it, each standing for a
// single step of b, and yields the child together with its element. When it
// reports a size, that becomes b's length up front.
//
// Each yielded child must be ended by the caller. b itself is released when
// the loop ends.
func SplitEach[T any](b *Bar, it Iterator[T]) iter.Seq2[*Bar, T] {
	if n, ok := sizeHint(it); ok {
		b.SetLength(n)
	}
	splitter := b.SplitSized()

	return func(yield func(*Bar, T) bool) {
		defer closeInner(it)
		defer splitter.Close()

		for {
			v, ok := it.Next()
			if !ok {
				splitter.Finish()
				return
			}
			if !yield(splitter.Take(1), v) {
				return
			}
		}
	}
}
