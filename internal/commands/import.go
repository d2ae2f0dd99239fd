package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/history"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newImportCommand(ledgerDir *string) *cobra.Command {
	var bankName string
	var password string

	cmd := &cobra.Command{
		Use:   "import <statement.xlsx>",
		Short: "Import a bank statement workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, cfg, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			if bankName == "" {
				bankName = cfg.Import.DefaultBank
			}
			if bankName == "" {
				return fmt.Errorf("no bank given: pass --bank or set a default in %s", configFile)
			}
			bank, err := model.ParseBank(bankName)
			if err != nil {
				return err
			}
			return runImport(absDir, args[0], bank, password)
		},
	}

	cmd.Flags().StringVar(&bankName, "bank", "", "statement bank (PNB, HDFC, SBI)")
	cmd.Flags().StringVar(&password, "password", "", "workbook password, if protected")

	return cmd
}

func runImport(dir, file string, bank model.Bank, password string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	parsed, err := importer.Parse(f, bank, password)
	if err != nil {
		return importError(err)
	}

	cats := category.NewService(dir)
	payeeMap, err := cats.PayeeMap()
	if err != nil {
		return err
	}
	parsed = category.Assign(parsed, payeeMap)

	store := ledger.NewService(dir)
	fresh, err := store.Append(parsed)
	if errors.Is(err, ledger.ErrNothingNew) {
		fmt.Println("All transactions already imported.")
		return logImport(dir, bank, file, len(parsed), 0)
	}
	if err != nil {
		return err
	}

	skipped := len(parsed) - len(fresh)
	slog.Info("statement imported", "bank", bank, "file", file, "parsed", len(parsed), "imported", len(fresh), "skipped", skipped)
	if skipped > 0 {
		fmt.Printf("Imported %d transactions (%d already present) from %s\n", len(fresh), skipped, filepath.Base(file))
	} else {
		fmt.Printf("Imported %d transactions from %s\n", len(fresh), filepath.Base(file))
	}
	return logImport(dir, bank, file, len(parsed), len(fresh))
}

// importError rewords pipeline sentinels into actionable messages.
func importError(err error) error {
	switch {
	case errors.Is(err, importer.ErrPasswordRequired):
		return fmt.Errorf("statement is password protected: retry with --password")
	case errors.Is(err, importer.ErrWrongPassword):
		return fmt.Errorf("wrong statement password")
	case errors.Is(err, importer.ErrEmptyFile):
		return fmt.Errorf("statement file is empty")
	default:
		return err
	}
}

func logImport(dir string, bank model.Bank, file string, parsed, imported int) error {
	entry := history.Entry{
		Timestamp: time.Now().UTC(),
		Bank:      bank,
		File:      filepath.Base(file),
		Parsed:    parsed,
		Imported:  imported,
		Skipped:   parsed - imported,
	}
	if err := history.Append(dir, []history.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}
	return nil
}
