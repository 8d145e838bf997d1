package headway

import "iter"

// Iterator yields values one at a time until Next reports false.
type Iterator[T any] interface {
	Next() (T, bool)
}

// SizeHinter is implemented by iterators that know how many values remain.
type SizeHinter interface {
	SizeHint() (int, bool)
}

// stopper is implemented by iterators holding resources that must be freed
// when iteration stops early.
type stopper interface {
	Stop()
}

func sizeHint(it any) (int, bool) {
	if h, ok := it.(SizeHinter); ok {
		return h.SizeHint()
	}
	return 0, false
}

func closeInner(it any) {
	if s, ok := it.(stopper); ok {
		s.Stop()
	}
}

// BarIterator advances a bar as the wrapped iterator yields values and
// finishes it when the iterator is exhausted.
type BarIterator[T any] struct {
	bar   *Bar
	inner Iterator[T]
}

// Wrap ties b to it. If it reports a size, that becomes b's length.
func Wrap[T any](b *Bar, it Iterator[T]) *BarIterator[T] {
	if n, ok := sizeHint(it); ok {
		b.SetLength(n)
	}
	return &BarIterator[T]{bar: b, inner: it}
}

// Progress wraps it with a new bar on the default manager.
func Progress[T any](it Iterator[T]) *BarIterator[T] {
	return Wrap(New(), it)
}

// ProgressWith wraps it with b.
func ProgressWith[T any](it Iterator[T], b *Bar) *BarIterator[T] {
	return Wrap(b, it)
}

// Next returns the next value, advancing the bar by one. At the end it
// finishes the bar.
func (it *BarIterator[T]) Next() (T, bool) {
	v, ok := it.inner.Next()
	if !ok {
		it.bar.Finish()
		return v, false
	}
	it.bar.Inc()
	return v, true
}

// SizeHint reports the inner iterator's remaining size, if it has one.
func (it *BarIterator[T]) SizeHint() (int, bool) {
	return sizeHint(it.inner)
}

// Bar returns the bar being advanced.
func (it *BarIterator[T]) Bar() *Bar {
	return it.bar
}

// Close releases the bar, abandoning it unless the iterator was exhausted,
// and stops the inner iterator.
func (it *BarIterator[T]) Close() error {
	closeInner(it.inner)
	return it.bar.Close()
}

// All returns the remaining values as a range-over-func sequence. Breaking
// out of the loop, or a panic in its body, abandons the bar.
func (it *BarIterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Seq advances b once per value of seq. b finishes when seq is exhausted and
// is abandoned if the loop stops early. The length of b is left as it is.
func Seq[T any](b *Bar, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer b.Close()
		for v := range seq {
			b.Inc()
			if !yield(v) {
				return
			}
		}
		b.Finish()
	}
}

// SeqN is Seq for a sequence known to yield n values.
func SeqN[T any](b *Bar, seq iter.Seq[T], n int) iter.Seq[T] {
	b.SetLength(n)
	return Seq(b, seq)
}

// Slice ranges over s, advancing b once per element.
func Slice[T any](b *Bar, s []T) iter.Seq2[int, T] {
	b.SetLength(len(s))
	return func(yield func(int, T) bool) {
		defer b.Close()
		for i, v := range s {
			b.Inc()
			if !yield(i, v) {
				return
			}
		}
		b.Finish()
	}
}

// Range yields 0 through n-1, advancing b once per value.
func Range(b *Bar, n int) iter.Seq[int] {
	return SeqN(b, func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}, n)
}

// SliceIterator iterates over a slice and knows its remaining size.
type SliceIterator[T any] struct {
	items []T
}

// FromSlice returns an iterator over s.
func FromSlice[T any](s []T) *SliceIterator[T] {
	return &SliceIterator[T]{items: s}
}

func (it *SliceIterator[T]) Next() (T, bool) {
	var zero T
	if len(it.items) == 0 {
		return zero, false
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, true
}

func (it *SliceIterator[T]) SizeHint() (int, bool) {
	return len(it.items), true
}

// SeqIterator pulls values from a range-over-func sequence. Its size is
// unknown. Stop must be called if it is abandoned before exhaustion; a
// BarIterator wrapping it does so on Close.
type SeqIterator[T any] struct {
	next func() (T, bool)
	stop func()
}

// FromSeq returns an iterator pulling from seq.
func FromSeq[T any](seq iter.Seq[T]) *SeqIterator[T] {
	next, stop := iter.Pull(seq)
	return &SeqIterator[T]{next: next, stop: stop}
}

func (it *SeqIterator[T]) Next() (T, bool) {
	return it.next()
}

// Stop releases the underlying sequence.
func (it *SeqIterator[T]) Stop() {
	it.stop()
}

// CountIterator yields consecutive integers starting at zero.
type CountIterator struct {
	next    int
	end     int
	bounded bool
}

// Count returns an iterator over 0 through n-1.
func Count(n int) *CountIterator {
	return &CountIterator{end: max(n, 0), bounded: true}
}

// Counter returns an iterator counting up from zero without end.
func Counter() *CountIterator {
	return &CountIterator{}
}

func (it *CountIterator) Next() (int, bool) {
	if it.bounded && it.next >= it.end {
		return 0, false
	}
	v := it.next
	it.next++
	return v, true
}

// SizeHint reports the values left, or false for an endless counter.
func (it *CountIterator) SizeHint() (int, bool) {
	if !it.bounded {
		return 0, false
	}
	return it.end - it.next, true
}
