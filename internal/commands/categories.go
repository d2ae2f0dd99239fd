package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newCategoriesCommand(ledgerDir *string) *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
	}
	catCmd.AddCommand(newCategoriesListCommand(ledgerDir))
	catCmd.AddCommand(newCategoriesAddCommand(ledgerDir))
	catCmd.AddCommand(newCategoriesRemoveCommand(ledgerDir))
	catCmd.AddCommand(newCategoriesSetCommand(ledgerDir))
	return catCmd
}

func newCategoriesListCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			cats, err := category.NewService(absDir).Categories()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tTYPE")
			for _, c := range cats {
				fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Type)
			}
			return w.Flush()
		},
	}
}

func newCategoriesAddCommand(ledgerDir *string) *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			typ, err := parseCategoryType(typeStr)
			if err != nil {
				return err
			}
			if err := category.NewService(absDir).Add(args[0], typ); err != nil {
				return err
			}
			fmt.Printf("Added category %s (%s)\n", args[0], typ)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "expense", "category type: income, expense or savings")

	return cmd
}

func newCategoriesRemoveCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			if err := category.NewService(absDir).Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed category %s\n", args[0])
			return nil
		},
	}
}

func newCategoriesSetCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <payee> <category>",
		Short: "Map a payee to a category and recategorize its transactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runCategoriesSet(absDir, args[0], args[1])
		},
	}
}

func runCategoriesSet(dir, payee, categoryID string) error {
	cats := category.NewService(dir)

	existing, err := cats.Categories()
	if err != nil {
		return err
	}
	known := false
	for _, c := range existing {
		if c.ID == categoryID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q", categoryID)
	}

	if err := cats.SetPayeeCategory(payee, categoryID); err != nil {
		return err
	}

	store := ledger.NewService(dir)
	txns, err := store.ReadAll()
	if err != nil {
		return err
	}
	txns, changed := category.Reassign(txns, payee, categoryID)
	if changed > 0 {
		if err := store.Rewrite(txns); err != nil {
			return err
		}
	}

	fmt.Printf("Mapped %s to %s (%d transactions updated)\n", payee, categoryID, changed)
	return nil
}

func parseCategoryType(s string) (model.CategoryType, error) {
	switch s {
	case "income":
		return model.CategoryTypeIncome, nil
	case "expense":
		return model.CategoryTypeExpense, nil
	case "savings":
		return model.CategoryTypeSavings, nil
	default:
		return "", fmt.Errorf("unknown category type %q (want income, expense or savings)", s)
	}
}
