// Package report builds financial statements from a ledger and an
// accounting tree. The balance sheet is the structured view: reconciliation
// folds ledger transaction entries into tree leaf amounts and aggregates
// subtotals upward, after which named totals and the accounting equation can
// be queried.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertree-dev/ledgertree/internal/ledger"
	"github.com/ledgertree-dev/ledgertree/internal/tree"
)

// UnknownAccountError reports an account name with no matching tree node.
type UnknownAccountError struct {
	Account string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("no account named %q in the accounting tree", e.Account)
}

// MissingAccountTypeError reports an account node that resolves to no
// primary account type, which makes its postings unsignable.
type MissingAccountTypeError struct {
	Account string
}

func (e *MissingAccountTypeError) Error() string {
	return fmt.Sprintf("account %q resolves to no primary account type", e.Account)
}

// BalanceSheet pairs an accounting tree with the ledger for a reporting
// period. Build reconciles the two; the query methods read the result.
type BalanceSheet struct {
	id       int
	from, to time.Time
	tree     *tree.Tree
	ledger   *ledger.Ledger
}

// New creates a balance sheet over an existing ledger.
func New(id int, from, to time.Time, t *tree.Tree, l *ledger.Ledger) *BalanceSheet {
	return &BalanceSheet{id: id, from: from, to: to, tree: t, ledger: l}
}

// NewFromReader creates a balance sheet by reading the period's ledger
// through the supplied reader.
func NewFromReader(id int, from, to time.Time, t *tree.Tree, r ledger.Reader) (*BalanceSheet, error) {
	l, err := r.ReadByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("reading ledger for [%s, %s]: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}
	return New(id, from, to, t, l), nil
}

// ID returns the balance sheet's id.
func (b *BalanceSheet) ID() int { return b.id }

// SetID replaces the balance sheet's id.
func (b *BalanceSheet) SetID(id int) { b.id = id }

// FromDate returns the start of the reporting period.
func (b *BalanceSheet) FromDate() time.Time { return b.from }

// SetFromDate replaces the start of the reporting period.
func (b *BalanceSheet) SetFromDate(from time.Time) { b.from = from }

// ToDate returns the end of the reporting period.
func (b *BalanceSheet) ToDate() time.Time { return b.to }

// SetToDate replaces the end of the reporting period.
func (b *BalanceSheet) SetToDate(to time.Time) { b.to = to }

// AccountingTree returns the underlying tree.
func (b *BalanceSheet) AccountingTree() *tree.Tree { return b.tree }

// SetAccountingTree replaces the underlying tree.
func (b *BalanceSheet) SetAccountingTree(t *tree.Tree) { b.tree = t }

// Ledger returns the underlying ledger.
func (b *BalanceSheet) Ledger() *ledger.Ledger { return b.ledger }

// SetLedger replaces the underlying ledger.
func (b *BalanceSheet) SetLedger(l *ledger.Ledger) { b.ledger = l }

// AccountsTotal sums the current amounts of the named nodes. Any name that
// does not resolve is a typed error.
func (b *BalanceSheet) AccountsTotal(names ...string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, name := range names {
		id, ok := b.tree.FindByName(name)
		if !ok {
			return decimal.Zero, &UnknownAccountError{Account: name}
		}
		total = total.Add(b.tree.Amount(id))
	}
	return total, nil
}

// IsBalanced reports whether the two named groups carry the same total, by
// exact decimal comparison. With lhs = assets and rhs = liabilities plus
// equity this checks the accounting equation.
func (b *BalanceSheet) IsBalanced(lhs, rhs []string) (bool, error) {
	left, err := b.AccountsTotal(lhs...)
	if err != nil {
		return false, err
	}
	right, err := b.AccountsTotal(rhs...)
	if err != nil {
		return false, err
	}
	return left.Equal(right), nil
}
