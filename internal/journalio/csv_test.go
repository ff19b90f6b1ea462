package journalio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertree-dev/ledgertree/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

const sampleCSV = `entry_id,date,account,amount,type,description
1,2025-03-03,Short Term Loan,400,credit,took a short-term loan
1,2025-03-03,Cash,400,debit,took a short-term loan
2,2025-03-10,Cash,400,credit,purchased inventory
2,2025-03-10,Inventory,400,debit,purchased inventory
`

func TestReadJournal(t *testing.T) {
	entries, err := ReadJournal(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 1, first.ID())
	assert.Equal(t, date(2025, time.March, 3), first.DateOfEntry())
	assert.Equal(t, "took a short-term loan", first.Description())
	require.Len(t, first.TransactionEntries(), 2)
	assert.Equal(t, "Short Term Loan", first.TransactionEntries()[0].Account())
	assert.Equal(t, model.Credit, first.TransactionEntries()[0].EntryType())
	assert.True(t, first.Validate())

	assert.Equal(t, 2, entries[1].ID())
}

func TestReadRows_BadRecord(t *testing.T) {
	bad := "entry_id,date,account,amount,type,description\n" +
		"x,2025-03-03,Cash,400,debit,oops\n"
	_, err := ReadRows(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteReadRoundTrip(t *testing.T) {
	entries, err := ReadJournal(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteJournal(&buf, entries))

	again, err := ReadJournal(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, entries[0].ID(), again[0].ID())
	assert.True(t, again[0].TransactionEntries()[1].Amount().Equal(dec("400")))
}

func TestGroupRows_NegativeAmount(t *testing.T) {
	rows := []Row{{EntryID: 1, Date: date(2025, time.March, 3), Account: "Cash", Amount: dec("-5"), Type: model.Debit}}
	_, err := GroupRows(rows)
	assert.Error(t, err)
}

func TestFileReader_FiltersWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	r := NewFileReader(path, 1)
	l, err := r.ReadByDateRange(date(2025, time.March, 1), date(2025, time.March, 5))
	require.NoError(t, err)

	assert.Equal(t, 1, l.ID())
	assert.Equal(t, 1, l.NumberOfJournalEntries(), "only the loan entry falls in the window")
	_, ok := l.JournalEntryByID(1)
	assert.True(t, ok)
}

func TestFileReader_MissingFile(t *testing.T) {
	r := NewFileReader(filepath.Join(t.TempDir(), "absent.csv"), 1)
	_, err := r.ReadByDateRange(date(2025, time.March, 1), date(2025, time.March, 31))
	assert.Error(t, err)
}
