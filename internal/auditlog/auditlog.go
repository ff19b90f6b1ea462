// Package auditlog records balance-sheet builds in an append-only CSV under
// logs/, one row per build.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the build log.
type Entry struct {
	Timestamp time.Time
	Action    string
	From      time.Time
	To        time.Time
	LedgerID  int
	Entries   int
	Balanced  bool
	Details   string
}

// Header is the CSV header for build-log.csv.
const Header = "timestamp,action,from,to,ledger_id,entries,balanced,details"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "logs/build-log.csv"
	dateFormat   = "2006-01-02"
	colTimestamp = 0
	colAction    = 1
	colFrom      = 2
	colTo        = 3
	colLedgerID  = 4
	colEntries   = 5
	colBalanced  = 6
	colDetails   = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colFrom] = e.From.Format(dateFormat)
	row[colTo] = e.To.Format(dateFormat)
	row[colLedgerID] = strconv.Itoa(e.LedgerID)
	row[colEntries] = strconv.Itoa(e.Entries)
	row[colBalanced] = strconv.FormatBool(e.Balanced)
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	from, err := time.Parse(dateFormat, record[colFrom])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing from date %q: %w", record[colFrom], err)
	}
	to, err := time.Parse(dateFormat, record[colTo])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing to date %q: %w", record[colTo], err)
	}
	ledgerID, err := strconv.Atoi(record[colLedgerID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing ledger id %q: %w", record[colLedgerID], err)
	}
	entries, err := strconv.Atoi(record[colEntries])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing entry count %q: %w", record[colEntries], err)
	}
	balanced, err := strconv.ParseBool(record[colBalanced])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing balanced flag %q: %w", record[colBalanced], err)
	}

	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		From:      from,
		To:        to,
		LedgerID:  ledgerID,
		Entries:   entries,
		Balanced:  balanced,
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/build-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening build log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/build-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening build log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading build log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
