package model

import "fmt"

// ActionType describes the direction an account balance moves when an
// entry posts against it.
type ActionType int

const (
	Increase ActionType = iota
	Decrease
)

// String returns the string representation of the action type.
func (a ActionType) String() string {
	switch a {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "unknown"
	}
}

// ActionConflictError reports a primary account type whose debit and credit
// actions are the same, which would make every posting against it ambiguous.
type ActionConflictError struct {
	Name     string
	OnDebit  ActionType
	OnCredit ActionType
}

func (e *ActionConflictError) Error() string {
	return fmt.Sprintf("account type %q: on_debit (%s) must differ from on_credit (%s)", e.Name, e.OnDebit, e.OnCredit)
}

// PrimaryAccountType classifies a top-level account category (Assets,
// Liabilities, Owner's Equity, ...) by how debit and credit entries move
// its balance. Tree nodes below level 1 share their nearest level-1
// ancestor's type by pointer, so edits through the setters are visible
// everywhere the type is referenced.
type PrimaryAccountType struct {
	name     string
	onDebit  ActionType
	onCredit ActionType
}

// NewPrimaryAccountType creates a primary account type. A type whose debit
// and credit actions coincide is rejected outright rather than logged and
// kept, since it violates the double-entry sign rules.
func NewPrimaryAccountType(name string, onDebit, onCredit ActionType) (*PrimaryAccountType, error) {
	if onDebit == onCredit {
		return nil, &ActionConflictError{Name: name, OnDebit: onDebit, OnCredit: onCredit}
	}
	return &PrimaryAccountType{name: name, onDebit: onDebit, onCredit: onCredit}, nil
}

// Name returns the type's name.
func (t *PrimaryAccountType) Name() string { return t.name }

// OnDebit returns the balance movement a debit entry causes.
func (t *PrimaryAccountType) OnDebit() ActionType { return t.onDebit }

// OnCredit returns the balance movement a credit entry causes.
func (t *PrimaryAccountType) OnCredit() ActionType { return t.onCredit }

// SetName renames the type.
func (t *PrimaryAccountType) SetName(name string) { t.name = name }

// SetActions replaces the debit/credit action pair, enforcing the same
// conflict rule as the constructor. On error the previous pair is kept.
func (t *PrimaryAccountType) SetActions(onDebit, onCredit ActionType) error {
	if onDebit == onCredit {
		return &ActionConflictError{Name: t.name, OnDebit: onDebit, OnCredit: onCredit}
	}
	t.onDebit = onDebit
	t.onCredit = onCredit
	return nil
}

// Sign returns the signed multiplier (+1 or -1) a posting of the given
// entry type applies to balances under this account type.
func (t *PrimaryAccountType) Sign(entryType EntryType) int {
	action := t.onDebit
	if entryType == Credit {
		action = t.onCredit
	}
	if action == Increase {
		return 1
	}
	return -1
}
