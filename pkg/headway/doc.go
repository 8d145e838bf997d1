// Package headway draws progress bars in a terminal while the program keeps
// writing its own output above them.
//
// A bar is created with New and advanced through its handle:
//
//	bar := headway.New().WithMessage("Calibrating flux capacitors")
//	for range headway.Range(bar, 100) {
//		time.Sleep(20 * time.Millisecond)
//	}
//
// Bars can be split into children. The parent shows the combined progress:
//
//	w := headway.New().SplitWeighted()
//	first := w.Take(0.4).WithMessage("First part")
//	second := w.Take(0.6).WithMessage("Second part")
//	w.Close()
//
// Weighted children own a fraction of the parent and the parent shows a
// percentage. Sized children stand for a fixed number of parent steps.
// Summed children add their lengths and progress together.
//
// Every handle must be ended with Finish, Abandon or Close. A handle that is
// lost without being ended is abandoned once the garbage collector notices.
//
// Output written through Manager.Writer, Println or Printf is placed above
// the bars. Text written to os.Stdout directly, for example with fmt.Println,
// bypasses the manager and lands on top of the bar block; route it through
// Stdout, Println or Printf instead. When stdout is not a terminal, each bar
// is printed once after it has ended.
//
// Call Default().Close() before the program exits to print a final line for
// any bar still in flight.
//
// Settings are read from HEADWAY_* environment variables: HEADWAY_INTERACTIVE
// and HEADWAY_COLOR (auto, always, never), HEADWAY_STRICT, HEADWAY_DEBUG, and
// the HEADWAY_INTERVAL, HEADWAY_IDLE_PERIOD and HEADWAY_ANIMATION_PERIOD
// durations. HEADWAY_CONFIG may name a YAML file holding the same keys.
package headway
