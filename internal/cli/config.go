package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/headway/internal/config"
	"github.com/rileyhilliard/headway/internal/errors"
)

// configCmd prints the effective settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings as YAML",
	Long: `Print the settings headway would use, after applying the config file,
HEADWAY_* environment variables and flags.

The output is valid input for --config.

Examples:
  headway config
  HEADWAY_INTERACTIVE=never headway config
  headway config > headway.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Marshal(settings)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to render settings",
				"This is a bug; please report it")
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
