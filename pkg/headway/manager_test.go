package headway

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/headway/internal/config"
	"github.com/rileyhilliard/headway/internal/errors"
	"github.com/rileyhilliard/headway/internal/logger"
)

var fullBar = bar(strings.Repeat("█", 20))

func TestTick_NonInteractiveWritesOnlyEndedBars(t *testing.T) {
	m, out := newTestManager(t, false)

	b := m.New().WithLength(10)
	b.Inc()
	require.NoError(t, m.Tick())
	assert.Empty(t, out.String())
	assert.Equal(t, 1, m.Visible())

	b.Finish()
	assert.Equal(t, fullBar+" 10/10\n", out.String())
	assert.Equal(t, 0, m.Visible())
}

func TestTick_RemovesReleasedPrefixInOrder(t *testing.T) {
	m, out := newTestManager(t, false)

	first := m.New().WithLength(4)
	second := m.New().WithLength(4)

	second.Finish()
	assert.Empty(t, out.String(), "a released bar waits for the bars above it")
	assert.Equal(t, 2, m.Visible())

	first.Abandon()
	want := bar(strings.Repeat("X", 20)) + " 0/4\n" + fullBar + " 4/4\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 0, m.Visible())
}

func TestTick_KeepsRootWhileChildHandleLives(t *testing.T) {
	m, out := newTestManager(t, false)

	s := m.New().SplitSummed()
	child := s.Take()
	child.SetLength(3)
	require.NoError(t, s.Close())

	require.NoError(t, m.Tick())
	assert.Equal(t, 1, m.Visible())
	assert.Empty(t, out.String())

	child.Finish()
	assert.Equal(t, 0, m.Visible())
	assert.Equal(t, fullBar+" 3/3\n", out.String())
}

func TestTick_InteractiveRedrawsAndParksCursor(t *testing.T) {
	m, out := newTestManager(t, true)

	a := m.New().WithLength(10)
	a.SetPosition(5)
	b := m.New().WithLength(4)

	half := bar(strings.Repeat("█", 10)+strings.Repeat(" ", 10)) + " 5/10"
	empty := bar(strings.Repeat(" ", 20)) + " 0/4"

	require.NoError(t, m.Tick())
	assert.Equal(t, half+"\n"+empty+"\n\x1b[2F", out.String(), "erase stays buffered")

	out.Reset()
	m.Println("hello")
	assert.Equal(t, "\x1b[0Jhello\n", out.String(), "foreign output clears the block first")

	out.Reset()
	a.Finish()
	assert.Equal(t, fullBar+" 10/10\n"+empty+"\n\x1b[1F", out.String())
	assert.Equal(t, 1, m.Visible())

	out.Reset()
	b.Finish()
	assert.Equal(t, "\x1b[0J"+fullBar+" 4/4\n", out.String())
	assert.Equal(t, 0, m.Visible())
}

func TestManager_ForeignWriteMarksDirty(t *testing.T) {
	m, out := newTestManager(t, true)

	m.Printf("step %d\n", 1)
	var dirty bool
	underLock(m, func() { dirty = m.dirty })
	assert.True(t, dirty)
	assert.Equal(t, "step 1\n", out.String())

	_, err := io.WriteString(m.Writer(), "raw\n")
	require.NoError(t, err)
	assert.Equal(t, "step 1\nraw\n", out.String())

	require.NoError(t, m.Tick())
	underLock(m, func() { dirty = m.dirty })
	assert.False(t, dirty)
}

func TestManager_CloseRendersLiveBars(t *testing.T) {
	m, out := newTestManager(t, true)

	b := m.New().WithLength(10)
	b.SetPosition(5)

	require.NoError(t, m.Close())
	assert.Equal(t, bar(strings.Repeat("█", 10)+strings.Repeat(" ", 10))+" 5/10\n", out.String())
	assert.Equal(t, 0, m.Visible())

	out.Reset()
	b.Finish()
	assert.Empty(t, out.String(), "forgotten bars are not drawn again")
}

func TestManager_HiddenBarsAreNeverDrawn(t *testing.T) {
	m, out := newTestManager(t, false)

	h := m.Hidden().WithLength(5)
	assert.Equal(t, 0, m.Visible())

	for range 5 {
		h.Inc()
	}
	h.Finish()
	assert.Empty(t, out.String())
}

func TestManager_OutputErrors(t *testing.T) {
	log := logger.NewBufferLogger()
	m := NewManager(Options{Output: failingWriter{}, Interactive: true, Manual: true, Logger: log})

	b := m.New().WithLength(2)
	err := m.Tick()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrOutput))
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	b.Finish()
	assert.True(t, log.HasLevel("debug"), "terminators log tick failures")
}

func TestManager_RecoversAfterOutputError(t *testing.T) {
	out := &flakyWriter{fails: 1}
	m := NewManager(Options{Output: out, Manual: true, Logger: logger.Noop()})

	m.New().WithLength(1).Finish()
	assert.Empty(t, out.String(), "the failed line is dropped")

	m.New().WithLength(1).Finish()
	require.NoError(t, m.Tick())
	m.Println("hello")
	require.NoError(t, m.Close())

	assert.Equal(t, bar(strings.Repeat("█", 20))+" 1/1\nhello\n", out.String())
}

func TestRendererLoop(t *testing.T) {
	out := &syncBuffer{}
	m := NewManager(Options{
		Output:          out,
		Interactive:     true,
		Interval:        time.Millisecond,
		IdlePeriod:      5 * time.Millisecond,
		AnimationPeriod: 2 * time.Millisecond,
		Logger:          logger.Noop(),
	})

	b := m.New().WithLength(10)
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), " 0/10\n\x1b[1F")
	}, 2*time.Second, 5*time.Millisecond)

	b.Inc()
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), " 1/10\n")
	}, 2*time.Second, 5*time.Millisecond)

	b.Finish()
	assert.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return !m.running
	}, 2*time.Second, 5*time.Millisecond, "renderer stops once no bars remain")

	require.NoError(t, m.Close())
	assert.True(t, strings.HasSuffix(out.String(), fullBar+" 10/10\n"))
}

func TestRendererLoop_RestartsForNewBars(t *testing.T) {
	out := &syncBuffer{}
	m := NewManager(Options{Output: out, Interactive: true, Interval: time.Millisecond, Logger: logger.Noop()})

	for i := range 2 {
		b := m.New().WithLength(2)
		b.Finish()
		assert.Eventually(t, func() bool {
			m.mu.Lock()
			defer m.mu.Unlock()
			return !m.running
		}, 2*time.Second, 5*time.Millisecond, "round %d", i)
	}
	require.NoError(t, m.Close())
	assert.Equal(t, 2, strings.Count(out.String(), fullBar+" 2/2\n"))
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(Options{})
	def := config.DefaultConfig()

	assert.Equal(t, def.Interval, m.interval)
	assert.Equal(t, def.IdlePeriod, m.idle)
	assert.Equal(t, def.AnimationPeriod, m.animate)
	assert.NotNil(t, m.log)
	assert.False(t, m.Interactive())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Strict = true

	opts := OptionsFromConfig(cfg, false)
	assert.False(t, opts.Interactive)
	assert.False(t, opts.Color)
	assert.True(t, opts.Strict)

	cfg.Interactive = config.ModeAlways
	cfg.Color = config.ModeNever
	opts = OptionsFromConfig(cfg, false)
	assert.True(t, opts.Interactive)
	assert.False(t, opts.Color)

	cfg.Color = config.ModeAlways
	opts = OptionsFromConfig(cfg, false)
	assert.True(t, opts.Color)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

// flakyWriter fails its first fails writes, then records the rest.
type flakyWriter struct {
	fails int
	syncBuffer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.fails > 0 {
		w.fails--
		return 0, io.ErrClosedPipe
	}
	return w.syncBuffer.Write(p)
}
