package cmd

import (
	"github.com/compozy/changelog/internal/orchestrator"
	"github.com/compozy/changelog/pkg/version"
	"github.com/spf13/cobra"
)

var (
	dryRun  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate CHANGELOG.md from git tags and history",
	Long: `changelog groups the commits of the current repository by the release tag
they landed in and writes them to CHANGELOG.md, newest release first.

Tags named v1.2.3 or 1.2.3 mark releases; any other tag is ignored. Commits
after the latest release tag are listed under [Unreleased].`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newContainer(verbose)
		if err != nil {
			return err
		}
		defer c.close()
		cfg := orchestrator.GenerateConfig{
			OutputFile: c.cfg.OutputFile,
			DryRun:     dryRun,
			Stdout:     cmd.OutOrStdout(),
		}
		return c.generateOrch.Execute(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the changelog instead of writing it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// InitCommands registers subcommands on the root command
func InitCommands() error {
	rootCmd.Version = version.Summary()
	rootCmd.AddCommand(newVersionCmd())
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
