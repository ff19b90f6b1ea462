// Package journalio reads and writes journals as CSV, one row per
// transaction entry, and exposes a file-backed ledger reader.
package journalio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertree-dev/ledgertree/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account,amount,type,description"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAccount = 2
	colAmount  = 3
	colType    = 4
	colDesc    = 5
)

// Row is one journal.csv record: a single transaction entry tagged with the
// journal entry it belongs to.
type Row struct {
	EntryID     int
	Date        time.Time
	Account     string
	Amount      decimal.Decimal
	Type        model.EntryType
	Description string
}

// MarshalRow converts a Row to a CSV record.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colEntryID] = strconv.Itoa(row.EntryID)
	rec[colDate] = row.Date.Format(dateFormat)
	rec[colAccount] = row.Account
	rec[colAmount] = row.Amount.String()
	rec[colType] = row.Type.String()
	rec[colDesc] = row.Description
	return rec
}

// UnmarshalRow converts a CSV record to a Row.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID, err := strconv.Atoi(record[colEntryID])
	if err != nil {
		return Row{}, fmt.Errorf("parsing entry_id %q: %w", record[colEntryID], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	entryType, err := model.ParseEntryType(record[colType])
	if err != nil {
		return Row{}, fmt.Errorf("parsing type: %w", err)
	}

	return Row{
		EntryID:     entryID,
		Date:        date,
		Account:     record[colAccount],
		Amount:      amount,
		Type:        entryType,
		Description: record[colDesc],
	}, nil
}

// ReadRows reads all rows from a journal.csv reader, skipping the header.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows writes rows to a journal.csv writer, including the header.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// GroupRows folds rows into journal entries, grouped by entry id in
// first-seen order. A group's date and description come from its first row.
func GroupRows(rows []Row) ([]*model.JournalEntry, error) {
	entries := make(map[int]*model.JournalEntry)
	var order []*model.JournalEntry

	for _, row := range rows {
		journal, seen := entries[row.EntryID]
		if !seen {
			journal = model.NewJournalEntry(row.EntryID, row.Date, row.Description)
			entries[row.EntryID] = journal
			order = append(order, journal)
		}

		entry, err := model.NewTransactionEntry(row.Account, row.Amount, row.Type, row.Date, row.Description)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", row.EntryID, err)
		}
		journal.AddTransactionEntry(entry)
	}
	return order, nil
}

// FlattenEntries converts journal entries back into rows.
func FlattenEntries(entries []*model.JournalEntry) []Row {
	var rows []Row
	for _, journal := range entries {
		for _, entry := range journal.TransactionEntries() {
			rows = append(rows, Row{
				EntryID:     journal.ID(),
				Date:        entry.DateOfEntry(),
				Account:     entry.Account(),
				Amount:      entry.Amount(),
				Type:        entry.EntryType(),
				Description: entry.Description(),
			})
		}
	}
	return rows
}

// ReadJournal reads a journal.csv stream into journal entries.
func ReadJournal(r io.Reader) ([]*model.JournalEntry, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return GroupRows(rows)
}

// WriteJournal writes journal entries as a journal.csv stream.
func WriteJournal(w io.Writer, entries []*model.JournalEntry) error {
	return WriteRows(w, FlattenEntries(entries))
}
