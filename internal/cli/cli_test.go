package cli

import (
	"bytes"
	"testing"

	"github.com/rileyhilliard/headway/internal/config"
)

// executeCommand runs rootCmd with args and returns what it wrote.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	cfgFile = ""
	noColor = false
	demoList = false
	demoSpeed = 1
	versionShort = false
	settings = config.DefaultConfig()
}

// isolateEnv clears settings that would leak in from the developer's shell.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG", "INTERACTIVE", "COLOR", "STRICT", "DEBUG", "INTERVAL", "IDLE_PERIOD", "ANIMATION_PERIOD"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}
}
