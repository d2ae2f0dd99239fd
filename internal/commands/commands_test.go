package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "ledgerline-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "ledgerline")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ledgerline")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runLedgerline(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func initLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runLedgerline(t, "init", "--ledger", dir)
	require.NoError(t, err, out)
	return dir
}

// writeStatement builds a small PNB workbook on disk with three usable rows.
func writeStatement(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Statement of Account"},
		{"Txn Date", "Txn No.", "Description", "Dr Amount", "Cr Amount"},
		{"01/01/2024", "S100", "ATM WDL", "500", ""},
		{"02/01/2024", "S101", "UPI/DR/998877/ZOMATO/okhdfc", "249.50", ""},
		{"03/01/2024", "S102", "NEFT CR-AX9-ACME CORP-invoice", "", "3,500.00"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInit_CreatesFiles(t *testing.T) {
	dir := initLedger(t)

	for _, name := range []string{"ledgerline.yaml", "categories.yaml", "payee-map.json", "transactions.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
	}
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_RejectsUnknownDefaultBank(t *testing.T) {
	dir := t.TempDir()
	out, err := runLedgerline(t, "init", "--ledger", dir, "--default-bank", "ICICI")
	require.Error(t, err)
	assert.Contains(t, out, "ICICI")
}

func TestAddAndList(t *testing.T) {
	dir := initLedger(t)

	out, err := runLedgerline(t, "add", "--ledger", dir,
		"--payee", "Grocer", "--amount", "250", "--date", "2024-03-05")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added Debit 250 to Grocer (Other)")

	out, err = runLedgerline(t, "list", "--ledger", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-03-05")
	assert.Contains(t, out, "-250")
	assert.Contains(t, out, "Grocer")
	assert.Contains(t, out, "Manual: Grocer")
}

func TestAdd_CategoryLearned(t *testing.T) {
	dir := initLedger(t)

	out, err := runLedgerline(t, "add", "--ledger", dir,
		"--payee", "Landlord", "--amount", "15000", "--category", "Rent")
	require.NoError(t, err, out)

	// The explicit category is remembered for the next add.
	out, err = runLedgerline(t, "add", "--ledger", dir,
		"--payee", "Landlord", "--amount", "15000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "(Rent)")
}

func TestImport_Statement(t *testing.T) {
	dir := initLedger(t)
	statement := writeStatement(t)

	out, err := runLedgerline(t, "import", "--ledger", dir, "--bank", "PNB", statement)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 3 transactions")

	out, err = runLedgerline(t, "list", "--ledger", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "ZOMATO")
	assert.Contains(t, out, "ACME CORP")

	// Import log records the run.
	data, err := os.ReadFile(filepath.Join(dir, "logs", "imports.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "PNB,statement.xlsx,3,3,0")
}

func TestImport_Duplicate(t *testing.T) {
	dir := initLedger(t)
	statement := writeStatement(t)

	out, err := runLedgerline(t, "import", "--ledger", dir, "--bank", "PNB", statement)
	require.NoError(t, err, out)

	out, err = runLedgerline(t, "import", "--ledger", dir, "--bank", "PNB", statement)
	require.NoError(t, err, out)
	assert.Contains(t, out, "All transactions already imported.")
}

func TestImport_NoBank(t *testing.T) {
	dir := initLedger(t)
	statement := writeStatement(t)

	out, err := runLedgerline(t, "import", "--ledger", dir, statement)
	require.Error(t, err)
	assert.Contains(t, out, "no bank given")
}

func TestImport_DefaultBankFromConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runLedgerline(t, "init", "--ledger", dir, "--default-bank", "PNB")
	require.NoError(t, err, out)

	statement := writeStatement(t)
	out, err = runLedgerline(t, "import", "--ledger", dir, statement)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 3 transactions")
}

func TestCategoriesSet_Recategorizes(t *testing.T) {
	dir := initLedger(t)
	statement := writeStatement(t)

	out, err := runLedgerline(t, "import", "--ledger", dir, "--bank", "PNB", statement)
	require.NoError(t, err, out)

	out, err = runLedgerline(t, "categories", "set", "--ledger", dir, "ZOMATO", "Food")
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 transactions updated")

	out, err = runLedgerline(t, "list", "--ledger", dir, "--payee", "ZOMATO")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Food")
}

func TestCategoriesSet_UnknownCategory(t *testing.T) {
	dir := initLedger(t)
	out, err := runLedgerline(t, "categories", "set", "--ledger", dir, "ZOMATO", "Bogus")
	require.Error(t, err)
	assert.Contains(t, out, "unknown category")
}

func TestCategoriesAddRemoveList(t *testing.T) {
	dir := initLedger(t)

	out, err := runLedgerline(t, "categories", "add", "--ledger", dir, "Subscriptions")
	require.NoError(t, err, out)

	out, err = runLedgerline(t, "categories", "list", "--ledger", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Subscriptions")

	out, err = runLedgerline(t, "categories", "remove", "--ledger", dir, "Subscriptions")
	require.NoError(t, err, out)

	out, err = runLedgerline(t, "categories", "list", "--ledger", dir)
	require.NoError(t, err, out)
	assert.NotContains(t, out, "Subscriptions")
}

func TestStats(t *testing.T) {
	dir := initLedger(t)

	out, err := runLedgerline(t, "add", "--ledger", dir,
		"--payee", "Employer", "--amount", "50000", "--direction", "credit",
		"--category", "Salary", "--date", "2024-03-01")
	require.NoError(t, err, out)
	out, err = runLedgerline(t, "add", "--ledger", dir,
		"--payee", "Grocer", "--amount", "1200", "--category", "Food", "--date", "2024-03-02")
	require.NoError(t, err, out)

	out, err = runLedgerline(t, "stats", "--ledger", dir, "--month", "2024-03")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Income:   50000 INR")
	assert.Contains(t, out, "Expenses: 1200 INR")
	assert.Contains(t, out, "Net:      48800 INR")
}

func TestPayeesExportImport(t *testing.T) {
	dir := initLedger(t)
	statement := writeStatement(t)

	out, err := runLedgerline(t, "import", "--ledger", dir, "--bank", "PNB", statement)
	require.NoError(t, err, out)

	mapFile := filepath.Join(t.TempDir(), "payees.json")
	require.NoError(t, os.WriteFile(mapFile, []byte(`{"ZOMATO": "Food"}`), 0o644))

	out, err = runLedgerline(t, "payees", "import", "--ledger", dir, mapFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 transactions updated")

	out, err = runLedgerline(t, "payees", "list", "--ledger", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "ZOMATO")
	assert.Contains(t, out, "Food")

	exportFile := filepath.Join(t.TempDir(), "export.json")
	out, err = runLedgerline(t, "payees", "export", "--ledger", dir, exportFile)
	require.NoError(t, err, out)

	data, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ZOMATO": "Food"`)
}
