package headway

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/rileyhilliard/headway/internal/config"
	"github.com/rileyhilliard/headway/internal/errors"
	"github.com/rileyhilliard/headway/internal/logger"
	"github.com/rileyhilliard/headway/internal/ui"
)

// Options configures a Manager.
type Options struct {
	// Output receives the rendered bars. Default: os.Stdout
	Output io.Writer

	// Interactive enables continuous redraw with cursor control. When false,
	// bars are written once, after they have ended and been released.
	Interactive bool

	// Color enables escape-coded colour in bar lines.
	Color bool

	// Strict panics when aggregation produces out-of-range values instead of
	// clamping them.
	Strict bool

	// Interval is how long the renderer sleeps between checks. Default: 20ms
	Interval time.Duration

	// IdlePeriod forces a redraw when nothing animates. Default: 200ms
	IdlePeriod time.Duration

	// AnimationPeriod forces a redraw while a bar animates. Default: 33ms
	AnimationPeriod time.Duration

	// Manual stops the manager from starting its renderer goroutine. The
	// caller redraws interactive bars by calling Tick.
	Manual bool

	// Logger receives renderer diagnostics. Default: logger.Default()
	Logger logger.Logger
}

// DefaultOptions builds options from HEADWAY_* environment settings and a
// probe of stdout.
func DefaultOptions() Options {
	return OptionsFromConfig(config.FromEnv(), ui.IsTerminal(os.Stdout))
}

// OptionsFromConfig builds options from cfg, resolving auto modes against
// whether stdout is a terminal.
func OptionsFromConfig(cfg *config.Config, stdoutIsTerminal bool) Options {
	interactive := ui.ResolveInteractive(cfg.Interactive, stdoutIsTerminal)

	log := logger.Default()
	if cfg.Debug {
		log = logger.New("[headway]", os.Stderr, true)
	}

	return Options{
		Output:          os.Stdout,
		Interactive:     interactive,
		Color:           ui.ResolveColor(cfg.Color, interactive),
		Strict:          cfg.Strict,
		Interval:        cfg.Interval,
		IdlePeriod:      cfg.IdlePeriod,
		AnimationPeriod: cfg.AnimationPeriod,
		Logger:          log,
	}
}

// Manager owns a set of root bars and draws them as a block below any
// other output written to the same stream.
//
// A single mutex guards the manager, every bar node it (or its hidden bars)
// owns, and the output buffer.
type Manager struct {
	mu sync.Mutex

	roots       []*node
	running     bool
	dirty       bool
	interactive bool
	manual      bool

	dst      io.Writer
	out      *bufio.Writer
	render   renderer
	log      logger.Logger
	interval time.Duration
	idle     time.Duration
	animate  time.Duration

	loopDone sync.WaitGroup
}

// NewManager creates a manager. The renderer goroutine starts with the
// first visible bar when opts.Interactive is set.
func NewManager(opts Options) *Manager {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	def := config.DefaultConfig()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.IdlePeriod <= 0 {
		opts.IdlePeriod = def.IdlePeriod
	}
	if opts.AnimationPeriod <= 0 {
		opts.AnimationPeriod = def.AnimationPeriod
	}

	return &Manager{
		interactive: opts.Interactive,
		manual:      opts.Manual,
		dst:         opts.Output,
		out:         bufio.NewWriter(opts.Output),
		render: renderer{
			width:     BarWidth,
			color:     opts.Color,
			strict:    opts.Strict,
			reference: time.Now(),
			now:       time.Now,
		},
		log:      opts.Logger,
		interval: opts.Interval,
		idle:     opts.IdlePeriod,
		animate:  opts.AnimationPeriod,
	}
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager writing to stdout, creating it
// from DefaultOptions on first use.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager(DefaultOptions())
	})
	return defaultManager
}

// Interactive reports whether the manager redraws bars in place.
func (m *Manager) Interactive() bool {
	return m.interactive
}

// Visible returns the number of root bars still on the live list.
func (m *Manager) Visible() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.roots)
}

// registerLocked adds a root and starts the renderer goroutine if needed.
// Must be called with m.mu held.
func (m *Manager) registerLocked(n *node) {
	m.roots = append(m.roots, n)
	if m.interactive && !m.manual && !m.running {
		m.running = true
		m.loopDone.Add(1)
		m.log.Debug("renderer started")
		go m.run()
	}
}

// run is the renderer goroutine. It exits once no roots remain.
func (m *Manager) run() {
	defer m.loopDone.Done()

	var lastHash uint64
	lastUpdate := time.Now()
	animating := false

	for {
		time.Sleep(m.interval)

		m.mu.Lock()
		if len(m.roots) == 0 {
			m.running = false
			m.mu.Unlock()
			m.log.Debug("renderer stopped")
			return
		}

		h := m.hashLocked()
		period := m.idle
		if animating {
			period = m.animate
		}
		if h != lastHash || m.dirty || time.Since(lastUpdate) > period {
			lastHash = h
			lastUpdate = time.Now()
			a, err := m.tickLocked()
			if err != nil {
				m.log.Debug("tick failed: %v", err)
			} else {
				animating = a
			}
		}
		m.mu.Unlock()
	}
}

// hashLocked summarises the reportable state of every root.
// Must be called with m.mu held.
func (m *Manager) hashLocked() uint64 {
	d := xxhash.New()
	_, _ = fmt.Fprintf(d, "%d;", len(m.roots))
	for _, root := range m.roots {
		root.hashState(d)
	}
	return d.Sum64()
}

// Tick renders once: released bars are printed a final time and dropped,
// then (in interactive mode) the remaining bars are drawn and the cursor is
// returned to the top of the block.
func (m *Manager) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.tickLocked()
	return err
}

// tickLocked must be called with m.mu held.
func (m *Manager) tickLocked() (animating bool, err error) {
	m.dirty = false
	var sb strings.Builder

	released := 0
	for _, root := range m.roots {
		if root.externallyReferenced() {
			break
		}
		if m.render.renderLine(&sb, root) {
			animating = true
		}
		sb.WriteByte('\n')
		released++
	}
	if released > 0 {
		clear(m.roots[:released])
		m.roots = m.roots[released:]
	}

	if !m.interactive {
		if _, err := m.out.WriteString(sb.String()); err != nil {
			return animating, m.outputErr(err)
		}
		return animating, m.outputErr(m.out.Flush())
	}

	for _, root := range m.roots {
		if m.render.renderLine(&sb, root) {
			animating = true
		}
		sb.WriteByte('\n')
	}

	if _, err := m.out.WriteString(sb.String()); err != nil {
		return animating, m.outputErr(err)
	}

	if len(m.roots) == 0 {
		return animating, m.outputErr(m.out.Flush())
	}

	// Park the cursor at the top of the block. The erase stays buffered so the
	// next write through this manager clears the block before printing over it.
	if _, err := m.out.WriteString(ui.CursorPrevLine(len(m.roots))); err != nil {
		return animating, m.outputErr(err)
	}
	if err := m.out.Flush(); err != nil {
		return animating, m.outputErr(err)
	}
	if _, err := m.out.WriteString(ui.EraseDown); err != nil {
		return animating, m.outputErr(err)
	}
	return animating, nil
}

// outputErr discards whatever is buffered after a failed write so the next
// tick starts clean, and wraps err. Must be called with m.mu held.
func (m *Manager) outputErr(err error) error {
	if err == nil {
		return nil
	}
	m.out.Reset(m.dst)
	return errors.WrapWithCode(err, errors.ErrOutput,
		"Failed to write progress bars",
		"Check that the output stream is still open")
}

// tickQuietly runs a tick for a handle terminator, logging instead of
// returning failures. Must be called with m.mu held.
func (m *Manager) tickQuietly() {
	if _, err := m.tickLocked(); err != nil {
		m.log.Debug("tick failed: %v", err)
	}
}

// Write writes foreign output above the bar block. It implements io.Writer.
func (m *Manager) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.out.Write(p)
	if err != nil {
		return n, m.outputErr(err)
	}
	m.dirty = true
	return n, m.outputErr(m.out.Flush())
}

// Writer returns m as an io.Writer for host output that should interleave
// cleanly with the bars.
func (m *Manager) Writer() io.Writer {
	return m
}

// Println writes a line of foreign output above the bar block.
func (m *Manager) Println(a ...any) {
	_, _ = fmt.Fprintln(m, a...)
}

// Printf writes formatted foreign output above the bar block.
func (m *Manager) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(m, format, a...)
}

// Close renders every live bar one last time below any earlier output,
// forgets them, and waits for the renderer goroutine to stop.
func (m *Manager) Close() error {
	m.mu.Lock()
	var sb strings.Builder
	for _, root := range m.roots {
		m.render.renderLine(&sb, root)
		sb.WriteByte('\n')
	}
	clear(m.roots)
	m.roots = nil

	_, err := m.out.WriteString(sb.String())
	if err == nil {
		err = m.out.Flush()
	}
	err = m.outputErr(err)
	m.mu.Unlock()

	m.loopDone.Wait()
	return err
}

// New creates a bar on the default manager.
func New() *Bar {
	return Default().New()
}

// Hidden creates a bar on the default manager that is never drawn.
func Hidden() *Bar {
	return Default().Hidden()
}

// Stdout returns a writer that interleaves with the default manager's bars.
func Stdout() io.Writer {
	return Default().Writer()
}

// Println writes a line above the default manager's bars.
func Println(a ...any) {
	Default().Println(a...)
}

// Printf writes formatted text above the default manager's bars.
func Printf(format string, a ...any) {
	Default().Printf(format, a...)
}
