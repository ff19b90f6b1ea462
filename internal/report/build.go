package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgertree-dev/ledgertree/internal/tree"
)

// accountTotal is the running signed total for one account name during a
// build, with the node it resolved to.
type accountTotal struct {
	node  tree.NodeID
	total decimal.Decimal
}

// Build reconciles the ledger onto the accounting tree: every transaction
// entry is signed by its account's primary type (credit uses the type's
// on-credit action, debit its on-debit action; increase is +, decrease is -)
// and accumulated per account name, the accumulated totals overwrite the
// resolved nodes' amounts, and the tree is aggregated from the root.
//
// A build is a full recompute of the period, not an increment. It is fatal
// for an entry to name an account absent from the tree, or one whose node
// carries no primary type; either aborts before any amount is written.
func (b *BalanceSheet) Build() error {
	totals := make(map[string]*accountTotal)
	var order []string

	for _, journal := range b.ledger.JournalEntries() {
		for _, entry := range journal.TransactionEntries() {
			name := entry.Account()
			at, seen := totals[name]
			if !seen {
				node, ok := b.tree.FindByName(name)
				if !ok {
					return fmt.Errorf("journal entry %d: %w", journal.ID(), &UnknownAccountError{Account: name})
				}
				if b.tree.AccountType(node) == nil {
					return fmt.Errorf("journal entry %d: %w", journal.ID(), &MissingAccountTypeError{Account: name})
				}
				at = &accountTotal{node: node, total: decimal.Zero}
				totals[name] = at
				order = append(order, name)
			}

			amount := entry.Amount()
			if b.tree.AccountType(at.node).Sign(entry.EntryType()) < 0 {
				amount = amount.Neg()
			}
			at.total = at.total.Add(amount)
		}
	}

	// All entries resolved; now write the totals and propagate upward.
	for _, name := range order {
		at := totals[name]
		b.tree.SetAmount(at.node, at.total)
	}
	b.tree.Aggregate(b.tree.Root())
	return nil
}
