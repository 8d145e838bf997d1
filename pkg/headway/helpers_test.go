package headway

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/headway/internal/logger"
)

// syncBuffer is a bytes.Buffer safe for the renderer goroutine and the test
// to use at once.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// underLock runs fn while holding the manager lock, releasing it even when
// an assertion inside fn stops the test.
func underLock(m *Manager, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// renderLocked renders n with m's renderer under the manager lock.
func renderLocked(m *Manager, n *node) string {
	var sb strings.Builder
	underLock(m, func() { m.render.renderLine(&sb, n) })
	return sb.String()
}

// newTestManager returns a manager that never starts its renderer goroutine
// and draws without colour.
func newTestManager(t *testing.T, interactive bool) (*Manager, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	m := NewManager(Options{
		Output:      out,
		Interactive: interactive,
		Manual:      true,
		Logger:      logger.Noop(),
	})
	t.Cleanup(func() { _ = m.Close() })
	return m, out
}

// testRenderer renders without colour and with a frozen clock.
func testRenderer(color bool) *renderer {
	ref := time.Unix(0, 0)
	return &renderer{
		width:     BarWidth,
		color:     color,
		reference: ref,
		now:       func() time.Time { return ref },
	}
}

func leaf(length int, position int, state lifecycle) *node {
	n := &node{length: length, hasLength: true, position: position, lifecycle: state}
	return n
}

func unknownLeaf(position int, state lifecycle) *node {
	return &node{position: position, lifecycle: state}
}

func composite(kind splitKind, children []*node, weights ...float64) *node {
	n := &node{nested: &nested{kind: kind}}
	for i, c := range children {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		n.attach(c, w)
	}
	return n
}
