// Package cli implements the headway command-line interface.
//
// The binary exists to show the library in action and to inspect its
// settings:
//
//	headway demo [name]   - Run a progress bar scenario (--list to see them)
//	headway config        - Print the effective settings as YAML
//	headway version       - Print version information
//
// # Settings
//
// The root command loads settings once before any subcommand runs: the
// defaults, then the YAML file named by --config or $HEADWAY_CONFIG, then
// HEADWAY_* environment variables. --no-color forces colour off for both the
// bars and the styled CLI output.
//
// # Demos
//
// Each demo builds its own headway.Manager from those settings, writing to
// the command's output. Bars redraw in place only when that output is a
// terminal (or interactive is forced to always). --speed scales the
// simulated work so demos can run quickly in tests.
package cli
