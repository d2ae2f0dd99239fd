package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func entry() Entry {
	return Entry{
		Timestamp: time.Date(2024, 4, 1, 10, 30, 0, 0, time.UTC),
		Bank:      model.BankPNB,
		File:      "statement-march.xlsx",
		Parsed:    42,
		Imported:  40,
		Skipped:   2,
	}
}

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, []Entry{entry()}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry(), entries[0])
}

func TestAppend_Accumulates(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, []Entry{entry()}))
	second := entry()
	second.Bank = model.BankHDFC
	require.NoError(t, Append(root, []Entry{second}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.BankPNB, entries[0].Bank)
	assert.Equal(t, model.BankHDFC, entries[1].Bank)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadCounts(t *testing.T) {
	rec := MarshalEntry(entry())
	rec[colParsed] = "many"
	_, err := UnmarshalEntry(rec)
	assert.Error(t, err)
}
