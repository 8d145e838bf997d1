package headway

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar_Mutations(t *testing.T) {
	m, _ := newTestManager(t, false)
	b := m.New()
	n := b.n

	length, ok := b.Length()
	assert.False(t, ok)
	assert.Zero(t, length)

	b.SetLength(12)
	length, ok = b.Length()
	assert.True(t, ok)
	assert.Equal(t, 12, length)

	b.SetPosition(3)
	b.Inc()
	assert.Equal(t, 4, n.position)

	b.SetMessage("loading")
	assert.Equal(t, "loading", n.message)
	b.SetMessage("")
	assert.Empty(t, n.message)
	b.WithMessage("again").ClearMessage()
	assert.Empty(t, n.message)
	b.Finish()
}

func TestBar_FinishFillsKnownLength(t *testing.T) {
	m, _ := newTestManager(t, false)
	b := m.New().WithLength(10)
	n := b.n

	b.SetPosition(4)
	b.Finish()
	assert.Equal(t, 10, n.position)
	assert.Equal(t, completed, n.lifecycle)
	assert.Zero(t, n.handles)
}

func TestBar_FinishWithMessage(t *testing.T) {
	m, out := newTestManager(t, false)
	b := m.New().WithLength(2)

	b.FinishWithMessage("done")
	assert.Equal(t, fullBar+" 2/2 done\n", out.String())
}

func TestBar_TerminatorsAreIdempotent(t *testing.T) {
	tests := []struct {
		name string
		ops  []func(*Bar)
		want lifecycle
	}{
		{"finish twice", []func(*Bar){(*Bar).Finish, (*Bar).Finish}, completed},
		{"abandon twice", []func(*Bar){(*Bar).Abandon, (*Bar).Abandon}, abandoned},
		{"finish then abandon", []func(*Bar){(*Bar).Finish, (*Bar).Abandon}, completed},
		{"abandon then finish", []func(*Bar){(*Bar).Abandon, (*Bar).Finish}, abandoned},
		{"finish then close", []func(*Bar){(*Bar).Finish, func(b *Bar) { _ = b.Close() }}, completed},
		{"close", []func(*Bar){func(b *Bar) { _ = b.Close() }}, abandoned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newTestManager(t, false)
			b := m.New().WithLength(5)
			b.SetPosition(2)
			n := b.n

			tt.ops[0](b)
			once := out.String()
			for _, op := range tt.ops[1:] {
				op(b)
			}

			assert.Equal(t, tt.want, n.lifecycle)
			assert.Equal(t, once, out.String(), "later terminators print nothing")
			assert.Zero(t, n.handles)
		})
	}
}

func TestBar_MutationsAfterEndAreIgnored(t *testing.T) {
	m, _ := newTestManager(t, false)
	b := m.New().WithLength(5)
	n := b.n
	b.Abandon()

	b.SetLength(50)
	b.SetPosition(3)
	b.Inc()
	b.SetMessage("late")

	assert.Equal(t, 5, n.length)
	assert.Zero(t, n.position)
	assert.Empty(t, n.message)
}

func TestBar_ContractViolationsPanic(t *testing.T) {
	m, _ := newTestManager(t, false)

	ended := m.New()
	ended.Finish()

	assert.Panics(t, func() { ended.Length() })
	assert.Panics(t, func() { ended.SplitWeighted() })
	assert.Panics(t, func() { ended.SplitSized() })
	assert.Panics(t, func() { ended.SplitSummed() })

	live := m.New()
	defer live.Finish()
	assert.Panics(t, func() { live.SetLength(-1) })
	assert.Panics(t, func() { live.SetPosition(-1) })
}

func TestBar_ConcurrentInc(t *testing.T) {
	m, out := newTestManager(t, false)
	b := m.New().WithLength(800)
	n := b.n

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				b.Inc()
			}
		}()
	}
	wg.Wait()

	underLock(m, func() { assert.Equal(t, 800, n.position) })

	b.Finish()
	assert.Equal(t, fullBar+" 800/800\n", out.String())
}

func TestBar_UnreachableHandleIsAbandoned(t *testing.T) {
	for _, interactive := range []bool{false, true} {
		t.Run(fmt.Sprintf("interactive=%v", interactive), func(t *testing.T) {
			m, out := newTestManager(t, interactive)

			func() {
				b := m.New().WithLength(100)
				for range 20 {
					b.Inc()
				}
			}()

			// No Tick from the test: the release itself draws the final line.
			require.Eventually(t, func() bool {
				runtime.GC()
				return m.Visible() == 0
			}, 5*time.Second, 10*time.Millisecond)

			assert.Equal(t, bar("████"+strings.Repeat("X", 16))+" 20/100\n", out.String())
		})
	}
}
