package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a double entry a transaction posts on.
type EntryType int

const (
	Credit EntryType = iota
	Debit
)

// String returns the string representation of the entry type.
func (e EntryType) String() string {
	switch e {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// ParseEntryType parses "credit" or "debit" (any case).
func ParseEntryType(s string) (EntryType, error) {
	switch s {
	case "credit", "Credit", "CREDIT":
		return Credit, nil
	case "debit", "Debit", "DEBIT":
		return Debit, nil
	}
	return Credit, fmt.Errorf("unknown entry type %q", s)
}

// NegativeAmountError reports a transaction entry constructed with a
// negative amount. Direction is carried by EntryType, never by sign.
type NegativeAmountError struct {
	Account string
	Amount  decimal.Decimal
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("transaction entry for %q: amount %s is negative", e.Account, e.Amount)
}

// TransactionEntry is a single row within a journal entry: an amount posted
// against a named account on one side of the entry. The account is referenced
// by name; reconciliation resolves it against the accounting tree.
type TransactionEntry struct {
	account     string
	amount      decimal.Decimal
	entryType   EntryType
	dateOfEntry time.Time
	description string
}

// NewTransactionEntry creates a transaction entry. Negative amounts are
// rejected with a typed error.
func NewTransactionEntry(account string, amount decimal.Decimal, entryType EntryType, dateOfEntry time.Time, description string) (*TransactionEntry, error) {
	if amount.IsNegative() {
		return nil, &NegativeAmountError{Account: account, Amount: amount}
	}
	return &TransactionEntry{
		account:     account,
		amount:      amount,
		entryType:   entryType,
		dateOfEntry: dateOfEntry,
		description: description,
	}, nil
}

// Account returns the posted account's name.
func (t *TransactionEntry) Account() string { return t.account }

// SetAccount repoints the entry at another account name.
func (t *TransactionEntry) SetAccount(account string) { t.account = account }

// Amount returns the posted amount. Always non-negative.
func (t *TransactionEntry) Amount() decimal.Decimal { return t.amount }

// SetAmount replaces the amount, enforcing the non-negative rule.
func (t *TransactionEntry) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &NegativeAmountError{Account: t.account, Amount: amount}
	}
	t.amount = amount
	return nil
}

// EntryType returns which side of the double entry this row posts on.
func (t *TransactionEntry) EntryType() EntryType { return t.entryType }

// SetEntryType flips the entry to the given side.
func (t *TransactionEntry) SetEntryType(entryType EntryType) { t.entryType = entryType }

// DateOfEntry returns the posting date.
func (t *TransactionEntry) DateOfEntry() time.Time { return t.dateOfEntry }

// SetDateOfEntry replaces the posting date.
func (t *TransactionEntry) SetDateOfEntry(dateOfEntry time.Time) { t.dateOfEntry = dateOfEntry }

// Description returns the free-form entry description.
func (t *TransactionEntry) Description() string { return t.description }

// SetDescription replaces the description.
func (t *TransactionEntry) SetDescription(description string) { t.description = description }
