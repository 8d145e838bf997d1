package headway

import (
	"fmt"
	"runtime"
)

// Bar is a handle to one progress bar. It is the only external owner of the
// bar's state: once the handle finishes, abandons or closes, the bar can no
// longer be changed and the manager prints it a final time and forgets it.
//
// A Bar is safe for use from multiple goroutines. Mutations after the bar has
// ended are silently ignored.
type Bar struct {
	m *Manager
	n *node // nil once ended

	cleanup runtime.Cleanup
}

// orphan is what the GC cleanup needs to abandon a bar whose handle was lost.
// It must not reference the Bar itself.
type orphan struct {
	m *Manager
	n *node
}

// New creates a bar and adds it below the manager's existing bars.
func (m *Manager) New() *Bar {
	n := newNode()

	m.mu.Lock()
	m.registerLocked(n)
	m.mu.Unlock()

	return m.attachHandle(n)
}

// Hidden creates a bar that is never drawn. It is useful when an API wants a
// bar but no output is desired.
func (m *Manager) Hidden() *Bar {
	return m.attachHandle(newNode())
}

func (m *Manager) attachHandle(n *node) *Bar {
	b := &Bar{m: m, n: n}
	b.cleanup = runtime.AddCleanup(b, releaseOrphan, orphan{m: m, n: n})
	return b
}

// releaseOrphan abandons the node of a handle that became unreachable
// without being ended.
func releaseOrphan(o orphan) {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if o.n.handles == 0 {
		return
	}
	o.n.handles--
	if o.n.lifecycle == inProgress {
		o.n.lifecycle = abandoned
	}
	m.log.Debug("abandoned unreachable bar at position %d", o.n.position)
	m.tickQuietly()
}

// with runs fn on the live node under the manager lock. It reports false if
// the bar has already ended.
func (b *Bar) with(fn func(n *node)) bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	if b.n == nil {
		return false
	}
	fn(b.n)
	return true
}

// SetMessage sets the text shown after the bar. An empty string clears it.
func (b *Bar) SetMessage(msg string) {
	b.with(func(n *node) { n.message = msg })
}

// WithMessage is SetMessage returning b, for chaining.
func (b *Bar) WithMessage(msg string) *Bar {
	b.SetMessage(msg)
	return b
}

// ClearMessage removes the message.
func (b *Bar) ClearMessage() {
	b.SetMessage("")
}

// SetLength sets the number of steps in the bar.
func (b *Bar) SetLength(length int) {
	if length < 0 {
		panic(fmt.Sprintf("headway: negative bar length %d", length))
	}
	b.with(func(n *node) {
		n.length = length
		n.hasLength = true
	})
}

// WithLength is SetLength returning b, for chaining.
func (b *Bar) WithLength(length int) *Bar {
	b.SetLength(length)
	return b
}

// Length returns the length of the bar and whether one has been set.
// It panics if the bar has already ended.
func (b *Bar) Length() (int, bool) {
	var (
		length int
		ok     bool
	)
	if !b.with(func(n *node) { length, ok = n.length, n.hasLength }) {
		panic("headway: bar has ended; its length can no longer be read")
	}
	return length, ok
}

// SetPosition sets how many steps are done. It should usually not exceed
// the length.
func (b *Bar) SetPosition(pos int) {
	if pos < 0 {
		panic(fmt.Sprintf("headway: negative bar position %d", pos))
	}
	b.with(func(n *node) { n.position = pos })
}

// Inc advances the bar by one step.
func (b *Bar) Inc() {
	b.with(func(n *node) { n.position++ })
}

// Finish marks the bar completed, filling it when its length is known, and
// redraws before returning. Calling it again has no effect.
func (b *Bar) Finish() {
	b.end(completed)
}

// FinishWithMessage sets the message and then finishes the bar.
func (b *Bar) FinishWithMessage(msg string) {
	b.SetMessage(msg)
	b.Finish()
}

// Abandon marks the bar as never to be completed. The unfilled part is
// drawn as a red X tail. Calling it again, or after Finish, has no effect.
func (b *Bar) Abandon() {
	b.end(abandoned)
}

// Close releases the bar, abandoning it unless it has already ended. It
// always returns nil and exists so a bar can be released with defer.
func (b *Bar) Close() error {
	b.Abandon()
	return nil
}

func (b *Bar) end(state lifecycle) {
	m := b.m
	m.mu.Lock()
	defer m.mu.Unlock()

	n := b.n
	if n == nil {
		return
	}
	if state == completed && n.hasLength {
		n.position = n.length
	}
	if n.lifecycle == inProgress {
		n.lifecycle = state
	}
	n.handles--
	b.n = nil
	b.cleanup.Stop()

	m.tickQuietly()
}

// split installs an empty composite payload on the bar.
func (b *Bar) split(kind splitKind) {
	if !b.with(func(n *node) { n.nested = &nested{kind: kind} }) {
		panic("headway: cannot split a bar that has ended")
	}
}

// child creates a node under the bar's composite payload and returns a
// handle for it.
func (b *Bar) child(weight float64, init func(c *node)) *Bar {
	c := newNode()
	if init != nil {
		init(c)
	}
	if !b.with(func(n *node) { n.attach(c, weight) }) {
		panic("headway: cannot take from a splitter whose bar has ended")
	}
	return b.m.attachHandle(c)
}

// SplitWeighted turns the bar into a parent of children that each own a
// fraction of it. The bar is then shown as a percentage.
func (b *Bar) SplitWeighted() *Weighted {
	b.split(splitWeighted)
	return &Weighted{bar: b}
}

// SplitSized turns the bar into a parent of children that each stand for a
// fixed number of its steps.
func (b *Bar) SplitSized() *Sized {
	b.split(splitSized)
	return &Sized{bar: b}
}

// SplitSummed turns the bar into a parent whose length and progress are the
// sums of its children's.
func (b *Bar) SplitSummed() *Summed {
	b.split(splitSummed)
	return &Summed{bar: b}
}
