package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
)

func newPayeesCommand(ledgerDir *string) *cobra.Command {
	payeesCmd := &cobra.Command{
		Use:   "payees",
		Short: "Manage payee to category mappings",
	}
	payeesCmd.AddCommand(newPayeesListCommand(ledgerDir))
	payeesCmd.AddCommand(newPayeesExportCommand(ledgerDir))
	payeesCmd.AddCommand(newPayeesImportCommand(ledgerDir))
	return payeesCmd
}

func newPayeesListCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payees seen in the ledger and their mapped categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runPayeesList(absDir)
		},
	}
}

func runPayeesList(dir string) error {
	txns, err := ledger.NewService(dir).ReadAll()
	if err != nil {
		return err
	}
	payeeMap, err := category.NewService(dir).PayeeMap()
	if err != nil {
		return err
	}

	names := category.Payees(txns)
	if len(names) == 0 {
		fmt.Println("No payees.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAYEE\tCATEGORY")
	for _, name := range names {
		mapped := payeeMap[name]
		if mapped == "" {
			mapped = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, mapped)
	}
	return w.Flush()
}

func newPayeesExportCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the payee mappings as JSON, to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			out := ""
			if len(args) > 0 {
				out = args[0]
			}
			return runPayeesExport(absDir, out)
		},
	}
}

func runPayeesExport(dir, out string) error {
	payeeMap, err := category.NewService(dir).PayeeMap()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(payeeMap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling payee map: %w", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Exported %d payee mappings to %s\n", len(payeeMap), out)
	return nil
}

func newPayeesImportCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge payee mappings from a JSON file and recategorize uncategorized rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runPayeesImport(absDir, args[0])
		},
	}
}

func runPayeesImport(dir, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	var imported map[string]string
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	merged, err := category.NewService(dir).Merge(imported)
	if err != nil {
		return err
	}

	// Only rows still in the catch-all category pick up the new mappings.
	store := ledger.NewService(dir)
	txns, err := store.ReadAll()
	if err != nil {
		return err
	}
	txns, changed := category.Upgrade(txns, imported)
	if changed > 0 {
		if err := store.Rewrite(txns); err != nil {
			return err
		}
	}

	fmt.Printf("Merged %d mappings (%d total, %d transactions updated)\n", len(imported), len(merged), changed)
	return nil
}
