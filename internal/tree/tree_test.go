package tree

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertree-dev/ledgertree/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func acctType(t *testing.T, name string, onDebit, onCredit model.ActionType) *model.PrimaryAccountType {
	t.Helper()
	at, err := model.NewPrimaryAccountType(name, onDebit, onCredit)
	require.NoError(t, err)
	return at
}

// fixture is the standard balance-sheet chart used across the tree tests.
type fixture struct {
	tree *Tree

	assets, liabilities, equity                        NodeID
	currentAssets, currentLiabilities, retainedEarning NodeID
	cash, inventory, shortTermLoan, revenue, costSales NodeID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tr := New()
	f := &fixture{tree: tr}

	assetsType := acctType(t, "Assets", model.Increase, model.Decrease)
	liabilitiesType := acctType(t, "Liabilities", model.Decrease, model.Increase)
	equityType := acctType(t, "Owner's Equity", model.Decrease, model.Increase)

	var err error
	f.assets, err = tr.NewTagNode(1, "Assets", tr.Root(), assetsType)
	require.NoError(t, err)
	f.liabilities, err = tr.NewTagNode(1, "Liabilities", tr.Root(), liabilitiesType)
	require.NoError(t, err)
	f.equity, err = tr.NewTagNode(1, "Owner's Equity", tr.Root(), equityType)
	require.NoError(t, err)
	tr.AddChild(tr.Root(), f.assets)
	tr.AddChild(tr.Root(), f.liabilities)
	tr.AddChild(tr.Root(), f.equity)

	f.currentAssets, err = tr.NewTagNode(2, "Current Assets", f.assets, nil)
	require.NoError(t, err)
	f.currentLiabilities, err = tr.NewTagNode(2, "Current Liabilities", f.liabilities, nil)
	require.NoError(t, err)
	f.retainedEarning, err = tr.NewTagNode(2, "Retained Earnings", f.equity, nil)
	require.NoError(t, err)
	tr.AddChild(f.assets, f.currentAssets)
	tr.AddChild(f.liabilities, f.currentLiabilities)
	tr.AddChild(f.equity, f.retainedEarning)

	accounts := []struct {
		id     *NodeID
		name   string
		parent NodeID
	}{
		{&f.cash, "Cash", f.currentAssets},
		{&f.inventory, "Inventory", f.currentAssets},
		{&f.shortTermLoan, "Short Term Loan", f.currentLiabilities},
		{&f.revenue, "Revenue", f.retainedEarning},
		{&f.costSales, "Cost of Sales", f.retainedEarning},
	}
	for _, a := range accounts {
		*a.id, err = tr.NewAccountNode(3, a.name, a.parent)
		require.NoError(t, err)
		tr.AddChild(a.parent, *a.id)
	}

	return f
}

func TestRootNode(t *testing.T) {
	tr := New()
	assert.Equal(t, KindRoot, tr.Kind(tr.Root()))
	assert.Equal(t, 0, tr.Level(tr.Root()))
	assert.Equal(t, None, tr.Parent(tr.Root()))
	assert.Nil(t, tr.AccountType(tr.Root()))
	assert.Empty(t, tr.Children(tr.Root()))
}

func TestLevelInvariant(t *testing.T) {
	f := newFixture(t)
	for _, id := range f.tree.Descendants(f.tree.Root()) {
		parent := f.tree.Parent(id)
		assert.Equal(t, f.tree.Level(parent)+1, f.tree.Level(id), "node %q", f.tree.Name(id))
	}
}

func TestNewTagNode_Errors(t *testing.T) {
	tr := New()
	assetsType := acctType(t, "Assets", model.Increase, model.Decrease)

	tests := []struct {
		name     string
		level    int
		parent   NodeID
		acctType *model.PrimaryAccountType
	}{
		{"level below one", 0, tr.Root(), assetsType},
		{"level one without type", 1, tr.Root(), nil},
		{"level not parent plus one", 2, tr.Root(), nil},
		{"missing parent", 1, None, assetsType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.NewTagNode(tt.level, "bad", tt.parent, tt.acctType)
			var nodeErr *NodeError
			require.ErrorAs(t, err, &nodeErr)
			assert.Equal(t, "bad", nodeErr.Name)
		})
	}
}

func TestNewAccountNode_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.tree.NewAccountNode(3, "Orphan", None)
	require.Error(t, err)

	// An account node may never sit directly under the root.
	_, err = f.tree.NewAccountNode(1, "Shallow", f.tree.Root())
	require.Error(t, err)

	_, err = f.tree.NewAccountNode(2, "Mislevelled", f.currentAssets)
	require.Error(t, err)
}

func TestAccountTypeInheritance(t *testing.T) {
	f := newFixture(t)
	tr := f.tree

	// Level-1 nodes keep the type they were constructed with.
	assert.Equal(t, "Assets", tr.AccountType(f.assets).Name())

	// Deeper nodes share the nearest level-1 ancestor's type by pointer,
	// transitively through any depth.
	assert.Same(t, tr.AccountType(f.assets), tr.AccountType(f.currentAssets))
	assert.Same(t, tr.AccountType(f.assets), tr.AccountType(f.cash))
	assert.Same(t, tr.AccountType(f.equity), tr.AccountType(f.retainedEarning))
	assert.Same(t, tr.AccountType(f.equity), tr.AccountType(f.costSales))

	deep, err := tr.NewTagNode(3, "Fixed Deposits", f.currentAssets, nil)
	require.NoError(t, err)
	tr.AddChild(f.currentAssets, deep)
	assert.Same(t, tr.AccountType(f.assets), tr.AccountType(deep))
}

func TestConstructDoesNotAttach(t *testing.T) {
	f := newFixture(t)
	before := len(f.tree.Children(f.currentAssets))

	id, err := f.tree.NewAccountNode(3, "Petty Cash", f.currentAssets)
	require.NoError(t, err)
	assert.Len(t, f.tree.Children(f.currentAssets), before, "construction must not attach")

	f.tree.AddChild(f.currentAssets, id)
	assert.Len(t, f.tree.Children(f.currentAssets), before+1)
}

func TestAddChild_AccountNodeIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.tree.AddChild(f.cash, f.inventory)
	assert.Empty(t, f.tree.Children(f.cash))
}

func TestFindByName(t *testing.T) {
	f := newFixture(t)

	id, ok := f.tree.FindByName("cost of sales")
	require.True(t, ok)
	assert.Equal(t, f.costSales, id)
	assert.Equal(t, "Cost of Sales", f.tree.Name(id))

	_, ok = f.tree.FindByName("Goodwill")
	assert.False(t, ok)
}

func TestFindByName_FirstMatchWins(t *testing.T) {
	f := newFixture(t)
	tr := f.tree

	// Duplicate name in a later branch; pre-order, left-to-right means the
	// earlier branch's node is found.
	dup, err := tr.NewAccountNode(3, "Cash", f.currentLiabilities)
	require.NoError(t, err)
	tr.AddChild(f.currentLiabilities, dup)

	id, ok := tr.FindByName("Cash")
	require.True(t, ok)
	assert.Equal(t, f.cash, id)
}

func TestAncestorsAndDescendants(t *testing.T) {
	f := newFixture(t)
	tr := f.tree

	assert.Equal(t, []NodeID{f.currentAssets, f.assets, tr.Root()}, tr.Ancestors(f.cash))
	assert.Empty(t, tr.Ancestors(tr.Root()))

	desc := tr.Descendants(f.assets)
	assert.Equal(t, []NodeID{f.currentAssets, f.cash, f.inventory}, desc)
}
