package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/buildinfo"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/logging"
)

const configFile = "ledgerline.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var ledgerDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Personal ledger built from bank statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.DefaultConfig()
			if verbose {
				cfg.Level = slog.LevelDebug
			}
			logging.Setup(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(&ledgerDir))
	rootCmd.AddCommand(newImportCommand(&ledgerDir))
	rootCmd.AddCommand(newAddCommand(&ledgerDir))
	rootCmd.AddCommand(newListCommand(&ledgerDir))
	rootCmd.AddCommand(newStatsCommand(&ledgerDir))
	rootCmd.AddCommand(newCategoriesCommand(&ledgerDir))
	rootCmd.AddCommand(newPayeesCommand(&ledgerDir))

	return rootCmd
}

// resolveLedger turns the --ledger flag into an absolute directory and the
// effective configuration for it.
func resolveLedger(dir string) (string, *config.Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadOrDefault(filepath.Join(absDir, configFile), absDir)
	if err != nil {
		return "", nil, err
	}
	return absDir, cfg, nil
}
