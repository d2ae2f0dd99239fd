package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/report"
)

func newListCommand(ledgerDir *string) *cobra.Command {
	var monthStr string
	var yearNum int
	var payee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runList(absDir, monthStr, yearNum, payee)
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "only this month, as YYYY-MM")
	cmd.Flags().IntVar(&yearNum, "year", 0, "only this year")
	cmd.Flags().StringVar(&payee, "payee", "", "only this payee")

	return cmd
}

func runList(dir, monthStr string, yearNum int, payee string) error {
	txns, err := ledger.NewService(dir).ReadAll()
	if err != nil {
		return err
	}

	txns, err = filterPeriod(txns, monthStr, yearNum)
	if err != nil {
		return err
	}
	if payee != "" {
		var kept []model.Transaction
		for _, t := range txns {
			if t.Payee == payee {
				kept = append(kept, t)
			}
		}
		txns = kept
	}

	if len(txns) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tAMOUNT\tPAYEE\tCATEGORY\tBANK\tNARRATION")
	for _, t := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format(dateFormat), t.Signed(), t.Payee, t.Category, t.Bank, t.Narration)
	}
	return w.Flush()
}

// filterPeriod applies the --month / --year flags. --month wins when both
// are given.
func filterPeriod(txns []model.Transaction, monthStr string, yearNum int) ([]model.Transaction, error) {
	if monthStr != "" {
		m, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return nil, fmt.Errorf("parsing month %q: %w", monthStr, err)
		}
		return report.FilterMonth(txns, m.Year(), m.Month()), nil
	}
	if yearNum != 0 {
		return report.FilterYear(txns, yearNum), nil
	}
	return txns, nil
}
