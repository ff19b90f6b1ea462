// Package store persists ledgers in SQLite and serves them back by date
// range, implementing the ledger.Reader capability over durable storage.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/ledgertree-dev/ledgertree/internal/ledger"
	"github.com/ledgertree-dev/ledgertree/internal/model"
)

const dateFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id INTEGER NOT NULL PRIMARY KEY,
	date_of_entry TEXT NOT NULL,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transaction_entries (
	journal_id INTEGER NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	account TEXT NOT NULL,
	amount TEXT NOT NULL,
	entry_type TEXT NOT NULL,
	date_of_entry TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (journal_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries(date_of_entry);
`

// Store is a SQLite-backed journal store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLedger replaces the stored journal entries with the ledger's, in one
// transaction.
func (s *Store) SaveLedger(ctx context.Context, l *ledger.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transaction_entries`); err != nil {
		return fmt.Errorf("clear transaction entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_entries`); err != nil {
		return fmt.Errorf("clear journal entries: %w", err)
	}

	for _, journal := range l.JournalEntries() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO journal_entries (id, date_of_entry, description) VALUES (?, ?, ?)`,
			journal.ID(), journal.DateOfEntry().Format(dateFormat), journal.Description(),
		); err != nil {
			return fmt.Errorf("insert journal entry %d: %w", journal.ID(), err)
		}

		for seq, entry := range journal.TransactionEntries() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transaction_entries (journal_id, seq, account, amount, entry_type, date_of_entry, description)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				journal.ID(), seq, entry.Account(), entry.Amount().String(), entry.EntryType().String(),
				entry.DateOfEntry().Format(dateFormat), entry.Description(),
			); err != nil {
				return fmt.Errorf("insert transaction entry %d/%d: %w", journal.ID(), seq, err)
			}
		}
	}

	return tx.Commit()
}

// LedgerByDateRange reads the journal entries dated within [from, to] into
// a fresh ledger for that window.
func (s *Store) LedgerByDateRange(ctx context.Context, from, to time.Time) (*ledger.Ledger, error) {
	l, err := ledger.New(1, from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date_of_entry, description FROM journal_entries
		 WHERE date_of_entry BETWEEN ? AND ? ORDER BY id`,
		from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var journals []*model.JournalEntry
	for rows.Next() {
		var id int
		var dateStr, description string
		if err := rows.Scan(&id, &dateStr, &description); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		d, err := time.Parse(dateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("journal entry %d: parsing date %q: %w", id, dateStr, err)
		}
		journals = append(journals, model.NewJournalEntry(id, d, description))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}

	for _, journal := range journals {
		if err := s.loadTransactionEntries(ctx, journal); err != nil {
			return nil, err
		}
	}

	if err := l.AddJournalEntries(journals); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) loadTransactionEntries(ctx context.Context, journal *model.JournalEntry) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account, amount, entry_type, date_of_entry, description
		 FROM transaction_entries WHERE journal_id = ? ORDER BY seq`,
		journal.ID())
	if err != nil {
		return fmt.Errorf("query transaction entries for %d: %w", journal.ID(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var account, amountStr, typeStr, dateStr, description string
		if err := rows.Scan(&account, &amountStr, &typeStr, &dateStr, &description); err != nil {
			return fmt.Errorf("scan transaction entry: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("journal entry %d: parsing amount %q: %w", journal.ID(), amountStr, err)
		}
		entryType, err := model.ParseEntryType(typeStr)
		if err != nil {
			return fmt.Errorf("journal entry %d: %w", journal.ID(), err)
		}
		d, err := time.Parse(dateFormat, dateStr)
		if err != nil {
			return fmt.Errorf("journal entry %d: parsing date %q: %w", journal.ID(), dateStr, err)
		}

		entry, err := model.NewTransactionEntry(account, amount, entryType, d, description)
		if err != nil {
			return fmt.Errorf("journal entry %d: %w", journal.ID(), err)
		}
		journal.AddTransactionEntry(entry)
	}
	return rows.Err()
}

// ReadByDateRange implements ledger.Reader.
func (s *Store) ReadByDateRange(from, to time.Time) (*ledger.Ledger, error) {
	return s.LedgerByDateRange(context.Background(), from, to)
}
