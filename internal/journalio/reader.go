package journalio

import (
	"fmt"
	"os"
	"time"

	"github.com/ledgertree-dev/ledgertree/internal/ledger"
)

// FileReader reads ledgers from a journal.csv file. It implements
// ledger.Reader; entries dated outside the requested window are filtered
// out rather than rejected.
type FileReader struct {
	path     string
	ledgerID int
}

// NewFileReader creates a reader over the given journal.csv path.
func NewFileReader(path string, ledgerID int) *FileReader {
	return &FileReader{path: path, ledgerID: ledgerID}
}

// ReadByDateRange reads the file and returns a ledger scoped to [from, to]
// holding only the journal entries dated within it.
func (r *FileReader) ReadByDateRange(from, to time.Time) (*ledger.Ledger, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", r.path, err)
	}
	defer f.Close()

	entries, err := ReadJournal(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", r.path, err)
	}

	l, err := ledger.New(r.ledgerID, from, to)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		d := entry.DateOfEntry()
		if d.Before(from) || d.After(to) {
			continue
		}
		if err := l.AddJournalEntry(entry); err != nil {
			return nil, err
		}
	}
	return l, nil
}
