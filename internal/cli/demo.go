package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/headway/internal/errors"
	"github.com/rileyhilliard/headway/internal/ui"
	"github.com/rileyhilliard/headway/pkg/headway"
)

// Demo flags
var (
	demoList  bool
	demoSpeed float64
)

// demoEnv is what a scenario runs against.
type demoEnv struct {
	m     *headway.Manager
	speed float64
}

// sleep waits d scaled down by the speed multiplier.
func (e *demoEnv) sleep(d time.Duration) {
	time.Sleep(time.Duration(float64(d) / e.speed))
}

type demo struct {
	name    string
	summary string
	run     func(e *demoEnv)
}

// demos lists the scenarios in the order --list prints them.
var demos = []demo{
	{"simple", "one bar over 100 items", demoSimple},
	{"message", "a bar with a message", demoMessage},
	{"multiple", "five bars advanced from separate goroutines", demoMultiple},
	{"split-weighted", "one bar split 40/60 between two stages", demoSplitWeighted},
	{"split-sized", "children that stand for a fixed number of parent items", demoSplitSized},
	{"split-summed", "four concurrent children summed into one bar", demoSplitSummed},
	{"split-each", "one child bar per item", demoSplitEach},
	{"more-splitting", "nested splits with concurrent inner tasks", demoMoreSplitting},
	{"indeterminate", "a bar of unknown length", demoIndeterminate},
	{"abandonment", "a bar given up part way", demoAbandonment},
	{"print-during-progress", "output printed above a running bar", demoPrintDuringProgress},
	{"demo", "a tour through several of the above", demoTour},
}

func findDemo(name string) (demo, bool) {
	for _, d := range demos {
		if d.name == name {
			return d, true
		}
	}
	return demo{}, false
}

// demoCmd runs one of the built-in scenarios
var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Run a progress bar demo",
	Long: `Run one of the built-in progress bar scenarios.

Examples:
  headway demo --list
  headway demo simple
  headway demo split-summed --speed 4`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(demos))
		for _, d := range demos {
			names = append(names, d.name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if demoList || len(args) == 0 {
			listDemos(out)
			return nil
		}
		return runDemo(out, args[0], demoSpeed)
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoList, "list", false, "list available demos")
	demoCmd.Flags().Float64Var(&demoSpeed, "speed", 1, "speed multiplier for the simulated work")
	rootCmd.AddCommand(demoCmd)
}

func listDemos(w io.Writer) {
	ui.PrintHeader(w, ui.HeaderInfo{Title: "headway demos"})
	width := 0
	for _, d := range demos {
		width = max(width, len(d.name))
	}
	for _, d := range demos {
		fmt.Fprintf(w, "  %-*s  %s\n", width, d.name, ui.MutedStyle().Render(d.summary))
	}
}

// runDemo runs the named scenario on a fresh manager writing to w.
func runDemo(w io.Writer, name string, speed float64) error {
	d, ok := findDemo(name)
	if !ok {
		return errors.NewUnknownDemo(name)
	}
	if speed <= 0 {
		return errors.New(errors.ErrUsage,
			fmt.Sprintf("speed must be positive, got %v", speed),
			"Try --speed 1 for real time or --speed 10 to run faster")
	}

	opts := headway.OptionsFromConfig(settings, isStdout(w))
	opts.Output = w
	m := headway.NewManager(opts)

	ui.PrintHeader(w, ui.HeaderInfo{Title: d.name, Tagline: d.summary})
	start := time.Now()
	d.run(&demoEnv{m: m, speed: speed})
	if err := m.Close(); err != nil {
		return err
	}

	elapsed := time.Since(start).Round(10 * time.Millisecond)
	fmt.Fprintln(w, ui.StatusLine(true, fmt.Sprintf("%s finished in %s", d.name, elapsed)))
	return nil
}

// isStdout reports whether w is a terminal-attached stdout.
func isStdout(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && ui.IsTerminal(f)
}

func demoSimple(e *demoEnv) {
	for range headway.Range(e.m.New(), 100) {
		e.sleep(20 * time.Millisecond)
	}
}

func demoMessage(e *demoEnv) {
	bar := e.m.New().WithMessage("Calibrating flux capacitors")
	for range headway.Range(bar, 100) {
		e.sleep(20 * time.Millisecond)
	}
}

func demoMultiple(e *demoEnv) {
	var wg conc.WaitGroup
	for i := range 5 {
		bar := e.m.New()
		wg.Go(func() {
			for range headway.Range(bar, 100) {
				e.sleep(time.Duration(20+i*20) * time.Millisecond)
			}
		})
	}
	wg.Wait()
}

func demoSplitWeighted(e *demoEnv) {
	split := e.m.New().SplitWeighted()
	defer split.Close()

	first := split.Take(0.4).WithMessage("First part")
	second := split.Take(0.6).WithMessage("Second part")
	for range headway.Range(first, 50) {
		e.sleep(20 * time.Millisecond)
	}
	for range headway.Range(second, 50) {
		e.sleep(30 * time.Millisecond)
	}
}

func demoSplitSized(e *demoEnv) {
	split := e.m.New().SplitSized()
	defer split.Close()

	// Taken up front so the parent knows the total.
	first := split.Take(5).WithMessage("First")
	second := split.Take(20).WithMessage("Second")

	for range headway.Range(first, 5) {
		e.sleep(300 * time.Millisecond)
	}
	// Five steps here still fill the twenty parent items.
	for range headway.Range(second, 5) {
		e.sleep(300 * time.Millisecond)
	}
}

func demoSplitSummed(e *demoEnv) {
	split := e.m.New().SplitSummed()
	defer split.Close()

	var wg conc.WaitGroup
	for range 4 {
		child := split.Take()
		wg.Go(func() {
			for range headway.Range(child, 100) {
				e.sleep(20 * time.Millisecond)
			}
		})
	}
	wg.Wait()
}

func demoSplitEach(e *demoEnv) {
	for child, i := range headway.SplitEach(e.m.New(), headway.Count(10)) {
		child.SetMessage(fmt.Sprintf("Subtask %d", i))
		for range headway.Range(child, 200) {
			e.sleep(5 * time.Millisecond)
		}
	}
}

func demoMoreSplitting(e *demoEnv) {
	split := e.m.New().SplitWeighted()
	defer split.Close()

	// The first half is five concurrent tasks of 20 items each.
	firstHalf := split.Take(0.5).WithMessage("First part").SplitSized()
	var wg conc.WaitGroup
	for range 5 {
		inner := firstHalf.Take(20)
		wg.Go(func() {
			for range headway.Range(inner, 20) {
				e.sleep(30 * time.Millisecond)
			}
		})
	}
	firstHalf.Finish()

	second := split.Take(0.5).WithMessage("Second part")
	for range headway.Range(second, 50) {
		e.sleep(40 * time.Millisecond)
	}
	wg.Wait()
}

func demoIndeterminate(e *demoEnv) {
	for i := range headway.Wrap(e.m.New(), headway.Counter()).All() {
		if i == 100 {
			break
		}
		e.sleep(50 * time.Millisecond)
	}
}

func demoAbandonment(e *demoEnv) {
	var wg conc.WaitGroup
	bar := e.m.New()
	wg.Go(func() {
		for i := range headway.Range(bar, 100) {
			if i == 20 {
				e.m.Println("Something went wrong!")
				return
			}
			e.sleep(50 * time.Millisecond)
		}
	})
	wg.Wait()
	e.sleep(time.Second)
}

func demoPrintDuringProgress(e *demoEnv) {
	w := e.m.LineWriter()
	defer w.Close()
	for i := range headway.Range(e.m.New(), 100) {
		switch {
		case i%10 == 0:
			e.m.Println(i)
		case i%10 == 5:
			// chunked output reaches the terminal only once the line is whole
			fmt.Fprintf(w, "halfway to %d", i+5)
		case i%10 == 6:
			fmt.Fprintln(w, "...")
		}
		e.sleep(20 * time.Millisecond)
	}
}

func demoTour(e *demoEnv) {
	stages := []struct {
		title string
		run   func(*demoEnv)
	}{
		{"A bar with a message", demoMessage},
		{"Weighted split", demoSplitWeighted},
		{"Concurrent summed split", demoSplitSummed},
		{"Unknown length", demoIndeterminate},
		{"Abandonment", demoAbandonment},
	}
	for _, stage := range stages {
		e.m.Println(ui.InfoStyle().Render(stage.title))
		stage.run(e)
	}
}
