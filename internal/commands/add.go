package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const dateFormat = "2006-01-02"

func newAddCommand(ledgerDir *string) *cobra.Command {
	var payee string
	var amountStr string
	var dateStr string
	var directionStr string
	var categoryID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := resolveLedger(*ledgerDir)
			if err != nil {
				return err
			}
			return runAdd(absDir, payee, amountStr, dateStr, directionStr, categoryID)
		},
	}

	cmd.Flags().StringVar(&payee, "payee", "", "counterparty (required)")
	_ = cmd.MarkFlagRequired("payee")
	cmd.Flags().StringVar(&amountStr, "amount", "", "positive amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&directionStr, "direction", "debit", "debit or credit")
	cmd.Flags().StringVar(&categoryID, "category", "", "category (default from saved payee mappings)")

	return cmd
}

func runAdd(dir, payee, amountStr, dateStr, directionStr, categoryID string) error {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}

	direction, err := model.ParseDirection(directionStr)
	if err != nil {
		return err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr != "" {
		date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", dateStr, err)
		}
	}

	cats := category.NewService(dir)
	payeeMap, err := cats.PayeeMap()
	if err != nil {
		return err
	}

	txn := model.Transaction{
		ID:        id.Manual(time.Now()),
		Date:      date,
		Direction: direction,
		Amount:    amount,
		Narration: "Manual: " + payee,
		Payee:     payee,
		Category:  categoryID,
		Bank:      model.BankManual,
	}
	if txn.Category == "" {
		if mapped, ok := payeeMap[payee]; ok {
			txn.Category = mapped
		} else {
			txn.Category = model.CategoryOther
		}
	} else if payeeMap[payee] != txn.Category {
		// Remember an explicit choice for the next import.
		if err := cats.SetPayeeCategory(payee, txn.Category); err != nil {
			return err
		}
	}

	if _, err := ledger.NewService(dir).Append([]model.Transaction{txn}); err != nil {
		return err
	}

	fmt.Printf("Added %s %s to %s (%s)\n", direction, amount, payee, txn.Category)
	return nil
}
