package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("ledger")
	cfg.Import.DefaultBank = "HDFC"
	cfg.Display.Currency = "USD"

	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Ledger.Root, got.Ledger.Root)
	assert.Equal(t, cfg.Import.DefaultBank, got.Import.DefaultBank)
	assert.Equal(t, cfg.Display.Currency, got.Display.Currency)
}

func TestDefaults(t *testing.T) {
	cfg := Default("books")

	assert.Equal(t, "books", cfg.Ledger.Root)
	assert.Empty(t, cfg.Import.DefaultBank)
	assert.Equal(t, "INR", cfg.Display.Currency)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("ledger")
	cfg.Import.DefaultBank = "PNB"
	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "root: ledger")
	assert.Contains(t, contents, "default_bank: PNB")
	assert.Contains(t, contents, "currency: INR")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadOrDefault(filepath.Join(dir, "ledgerline.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got.Ledger.Root)
	assert.Equal(t, "INR", got.Display.Currency)

	cfg := Default(dir)
	cfg.Import.DefaultBank = "HDFC"
	require.NoError(t, Save(filepath.Join(dir, "ledgerline.yaml"), cfg))

	got, err = LoadOrDefault(filepath.Join(dir, "ledgerline.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, "HDFC", got.Import.DefaultBank)
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("LEDGERLINE_DEFAULT_BANK", "SBI")
	t.Setenv("LEDGERLINE_CURRENCY", "EUR")

	cfg := Default("ledger")
	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ledger", got.Ledger.Root)
	assert.Equal(t, "SBI", got.Import.DefaultBank)
	assert.Equal(t, "EUR", got.Display.Currency)
}
