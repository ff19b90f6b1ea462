// Package ledger implements the general ledger: an ordered, mutable
// collection of journal entries scoped to a date window.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgertree-dev/ledgertree/internal/model"
)

// Reader supplies a ledger from external storage for a date range. The core
// only requires this signature; CSV and SQLite implementations live in
// journalio and store.
type Reader interface {
	ReadByDateRange(from, to time.Time) (*Ledger, error)
}

// DateRangeError reports a journal entry dated outside its ledger's window.
type DateRangeError struct {
	EntryID     int
	DateOfEntry time.Time
	From        time.Time
	To          time.Time
}

func (e *DateRangeError) Error() string {
	const layout = "2006-01-02"
	return fmt.Sprintf("journal entry %d dated %s is outside the ledger window [%s, %s]",
		e.EntryID, e.DateOfEntry.Format(layout), e.From.Format(layout), e.To.Format(layout))
}

// Ledger holds journal entries for the window [from, to]. Every insertion
// validates entry dates against the window before any state changes, so a
// failed add (single or bulk) leaves the ledger untouched.
type Ledger struct {
	id             int
	from, to       time.Time
	journalEntries []*model.JournalEntry
}

// New creates an empty ledger for a date window. The window is fixed for the
// ledger's lifetime; from after to is an error.
func New(id int, from, to time.Time) (*Ledger, error) {
	if from.After(to) {
		return nil, fmt.Errorf("ledger %d: from date %s is after to date %s",
			id, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return &Ledger{id: id, from: from, to: to}, nil
}

// ID returns the ledger's id.
func (l *Ledger) ID() int { return l.id }

// SetID replaces the ledger's id.
func (l *Ledger) SetID(id int) { l.id = id }

// FromDate returns the inclusive start of the ledger's window.
func (l *Ledger) FromDate() time.Time { return l.from }

// ToDate returns the inclusive end of the ledger's window.
func (l *Ledger) ToDate() time.Time { return l.to }

func (l *Ledger) checkWindow(entry *model.JournalEntry) error {
	d := entry.DateOfEntry()
	if d.Before(l.from) || d.After(l.to) {
		return &DateRangeError{EntryID: entry.ID(), DateOfEntry: d, From: l.from, To: l.to}
	}
	return nil
}

// AddJournalEntry appends one entry after validating its date against the
// window.
func (l *Ledger) AddJournalEntry(entry *model.JournalEntry) error {
	if err := l.checkWindow(entry); err != nil {
		return err
	}
	l.journalEntries = append(l.journalEntries, entry)
	return nil
}

// AddJournalEntries appends entries all-or-nothing: every entry's date is
// validated before any is appended, so a rejection never leaves the ledger
// half-applied.
func (l *Ledger) AddJournalEntries(entries []*model.JournalEntry) error {
	for _, entry := range entries {
		if err := l.checkWindow(entry); err != nil {
			return err
		}
	}
	l.journalEntries = append(l.journalEntries, entries...)
	return nil
}

// SetJournalEntries replaces the ledger's entries wholesale, with the same
// all-or-nothing window validation as AddJournalEntries.
func (l *Ledger) SetJournalEntries(entries []*model.JournalEntry) error {
	for _, entry := range entries {
		if err := l.checkWindow(entry); err != nil {
			return err
		}
	}
	l.journalEntries = entries
	return nil
}

// RemoveJournalEntry removes the entry with the given id. Removing an id
// that is not present is a no-op.
func (l *Ledger) RemoveJournalEntry(id int) {
	kept := l.journalEntries[:0]
	for _, entry := range l.journalEntries {
		if entry.ID() != id {
			kept = append(kept, entry)
		}
	}
	l.journalEntries = kept
}

// RemoveAllJournalEntries clears the ledger's entries.
func (l *Ledger) RemoveAllJournalEntries() {
	l.journalEntries = nil
}

// Reset clears the entries and resets the id to 0, keeping the date window.
func (l *Ledger) Reset() {
	l.id = 0
	l.RemoveAllJournalEntries()
}

// JournalEntries returns the entries in insertion order.
func (l *Ledger) JournalEntries() []*model.JournalEntry {
	return l.journalEntries
}

// JournalEntryByID returns the entry with the given id.
func (l *Ledger) JournalEntryByID(id int) (*model.JournalEntry, bool) {
	for _, entry := range l.journalEntries {
		if entry.ID() == id {
			return entry, true
		}
	}
	return nil, false
}

// JournalEntriesByDate returns every entry recorded exactly on the given date.
func (l *Ledger) JournalEntriesByDate(dateOfEntry time.Time) []*model.JournalEntry {
	var out []*model.JournalEntry
	for _, entry := range l.journalEntries {
		if entry.DateOfEntry().Equal(dateOfEntry) {
			out = append(out, entry)
		}
	}
	return out
}

// JournalEntriesBetween returns every entry dated within [start, end],
// inclusive on both ends.
func (l *Ledger) JournalEntriesBetween(start, end time.Time) []*model.JournalEntry {
	var out []*model.JournalEntry
	for _, entry := range l.journalEntries {
		d := entry.DateOfEntry()
		if !d.Before(start) && !d.After(end) {
			out = append(out, entry)
		}
	}
	return out
}

// JournalEntriesByDescription returns every entry whose description contains
// the given substring. The match is case-sensitive.
func (l *Ledger) JournalEntriesByDescription(description string) []*model.JournalEntry {
	var out []*model.JournalEntry
	for _, entry := range l.journalEntries {
		if strings.Contains(entry.Description(), description) {
			out = append(out, entry)
		}
	}
	return out
}

// NumberOfJournalEntries returns the entry count.
func (l *Ledger) NumberOfJournalEntries() int {
	return len(l.journalEntries)
}
