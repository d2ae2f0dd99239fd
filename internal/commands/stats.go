package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/report"
)

func newStatsCommand(ledgerDir *string) *cobra.Command {
	var monthStr string
	var yearNum int
	var byCategory bool
	var daily bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize income, expenses and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, cfg, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runStats(absDir, cfg.Display.Currency, monthStr, yearNum, byCategory, daily)
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "only this month, as YYYY-MM")
	cmd.Flags().IntVar(&yearNum, "year", 0, "only this year")
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "break totals down per category")
	cmd.Flags().BoolVar(&daily, "daily", false, "show per-day debit and credit totals")

	return cmd
}

func runStats(dir, currency, monthStr string, yearNum int, byCategory, daily bool) error {
	txns, err := ledger.NewService(dir).ReadAll()
	if err != nil {
		return err
	}
	txns, err = filterPeriod(txns, monthStr, yearNum)
	if err != nil {
		return err
	}

	cats, err := category.NewService(dir).Categories()
	if err != nil {
		return err
	}

	stats := report.Compute(txns, cats)
	fmt.Printf("Income:   %s %s\n", stats.Income, currency)
	fmt.Printf("Expenses: %s %s\n", stats.Expense, currency)
	fmt.Printf("Savings:  %s %s\n", stats.Savings, currency)
	fmt.Printf("Net:      %s %s\n", stats.Net, currency)

	if byCategory {
		totals := report.ByCategory(txns)
		names := make([]string, 0, len(totals))
		for name := range totals {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tTOTAL")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, totals[name])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if daily {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tDEBITS\tCREDITS\tCOUNT")
		for _, day := range report.Daily(txns) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
				day.Date.Format(dateFormat), day.TotalDebit, day.TotalCredit, len(day.Transactions))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}
