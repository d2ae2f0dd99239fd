package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newInitCommand(ledgerDir *string) *cobra.Command {
	var defaultBank string
	var currency string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new ledger directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(*ledgerDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, defaultBank, currency)
		},
	}

	cmd.Flags().StringVar(&defaultBank, "default-bank", "", "bank assumed by import when --bank is omitted")
	cmd.Flags().StringVar(&currency, "currency", "INR", "currency label for reports")

	return cmd
}

func runInit(dir, defaultBank, currency string) error {
	if defaultBank != "" {
		if _, err := model.ParseBank(defaultBank); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory logs: %w", err)
	}

	// Write ledgerline.yaml.
	cfg := config.Default(dir)
	cfg.Import.DefaultBank = defaultBank
	cfg.Display.Currency = currency
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default category set.
	cats := category.NewService(dir)
	if err := cats.SaveCategories(model.DefaultCategories()); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	if err := cats.SavePayeeMap(map[string]string{}); err != nil {
		return fmt.Errorf("writing payee map: %w", err)
	}

	// Write an empty transaction store so list and stats work immediately.
	if err := ledger.NewService(dir).Rewrite(nil); err != nil {
		return fmt.Errorf("writing transaction store: %w", err)
	}

	fmt.Printf("Initialized ledger at %s\n", dir)
	return nil
}
