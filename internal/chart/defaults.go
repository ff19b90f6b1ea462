package chart

// Default returns the standard balance-sheet chart: Assets, Liabilities and
// Owner's Equity with current-asset, current-liability and retained-earnings
// subcategories.
func Default() *Chart {
	return &Chart{
		Types: []TypeSpec{
			{Name: "Assets", OnDebit: "increase", OnCredit: "decrease"},
			{Name: "Liabilities", OnDebit: "decrease", OnCredit: "increase"},
			{Name: "Owner's Equity", OnDebit: "decrease", OnCredit: "increase"},
		},
		Categories: []NodeSpec{
			{
				Name: "Assets",
				Type: "Assets",
				Children: []NodeSpec{
					{
						Name: "Current Assets",
						Children: []NodeSpec{
							{Name: "Cash", Account: true},
							{Name: "Inventory", Account: true},
						},
					},
				},
			},
			{
				Name: "Liabilities",
				Type: "Liabilities",
				Children: []NodeSpec{
					{
						Name: "Current Liabilities",
						Children: []NodeSpec{
							{Name: "Short Term Loan", Account: true},
						},
					},
				},
			},
			{
				Name: "Owner's Equity",
				Type: "Owner's Equity",
				Children: []NodeSpec{
					{
						Name: "Retained Earnings",
						Children: []NodeSpec{
							{Name: "Revenue", Account: true},
							{Name: "Cost of Sales", Account: true},
						},
					},
				},
			},
		},
	}
}
