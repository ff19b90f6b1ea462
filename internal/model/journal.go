package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a set of transaction entries recorded together. A correct
// entry balances: total credits equal total debits. An unbalanced entry is
// representable; Validate reports it rather than the journal rejecting it.
type JournalEntry struct {
	id                 int
	dateOfEntry        time.Time
	description        string
	transactionEntries []*TransactionEntry
}

// NewJournalEntry creates an empty journal entry.
func NewJournalEntry(id int, dateOfEntry time.Time, description string) *JournalEntry {
	return &JournalEntry{id: id, dateOfEntry: dateOfEntry, description: description}
}

// ID returns the entry's id.
func (j *JournalEntry) ID() int { return j.id }

// SetID replaces the entry's id.
func (j *JournalEntry) SetID(id int) { j.id = id }

// DateOfEntry returns the date the entry was recorded.
func (j *JournalEntry) DateOfEntry() time.Time { return j.dateOfEntry }

// SetDateOfEntry replaces the recording date.
func (j *JournalEntry) SetDateOfEntry(dateOfEntry time.Time) { j.dateOfEntry = dateOfEntry }

// Description returns the entry's description.
func (j *JournalEntry) Description() string { return j.description }

// SetDescription replaces the description.
func (j *JournalEntry) SetDescription(description string) { j.description = description }

// AddTransactionEntry appends a transaction entry, preserving insertion order.
func (j *JournalEntry) AddTransactionEntry(entry *TransactionEntry) {
	j.transactionEntries = append(j.transactionEntries, entry)
}

// TransactionEntries returns the ordered transaction entries.
func (j *JournalEntry) TransactionEntries() []*TransactionEntry {
	return j.transactionEntries
}

// Validate reports whether the entry balances: the credit total equals the
// debit total by exact decimal comparison.
func (j *JournalEntry) Validate() bool {
	return j.Imbalance().IsZero()
}

// Imbalance returns total debits minus total credits. Zero for a balanced
// entry; otherwise the exact delta, useful in diagnostics.
func (j *JournalEntry) Imbalance() decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, entry := range j.transactionEntries {
		switch entry.EntryType() {
		case Credit:
			credits = credits.Add(entry.Amount())
		case Debit:
			debits = debits.Add(entry.Amount())
		}
	}
	return debits.Sub(credits)
}
