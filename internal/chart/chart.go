// Package chart loads and saves declarative chart-of-accounts definitions
// and materializes them into accounting trees.
package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgertree-dev/ledgertree/internal/model"
	"github.com/ledgertree-dev/ledgertree/internal/tree"
)

// Chart is the YAML representation of a chart of accounts: the primary
// account types and the category/account hierarchy beneath the root.
type Chart struct {
	Types      []TypeSpec `yaml:"types"`
	Categories []NodeSpec `yaml:"categories"`
}

// TypeSpec declares a primary account type.
type TypeSpec struct {
	Name     string `yaml:"name"`
	OnDebit  string `yaml:"on_debit"`
	OnCredit string `yaml:"on_credit"`
}

// NodeSpec declares one tree node. Top-level specs are level-1 categories
// and must name a declared type; nested specs inherit. A spec with
// Account=true is a terminal account and may not have children.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type,omitempty"`
	Account  bool       `yaml:"account,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// Load reads a chart definition from a YAML file.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	var c Chart
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}
	return &c, nil
}

// Save writes the chart definition to a YAML file.
func Save(path string, c *Chart) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling chart: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

func parseAction(s string) (model.ActionType, error) {
	switch s {
	case "increase":
		return model.Increase, nil
	case "decrease":
		return model.Decrease, nil
	}
	return model.Increase, fmt.Errorf("unknown action %q (want increase or decrease)", s)
}

// BuildTree materializes the chart into an accounting tree, enforcing all
// node construction rules along the way.
func (c *Chart) BuildTree() (*tree.Tree, error) {
	types := make(map[string]*model.PrimaryAccountType, len(c.Types))
	for _, spec := range c.Types {
		onDebit, err := parseAction(spec.OnDebit)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", spec.Name, err)
		}
		onCredit, err := parseAction(spec.OnCredit)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", spec.Name, err)
		}
		at, err := model.NewPrimaryAccountType(spec.Name, onDebit, onCredit)
		if err != nil {
			return nil, err
		}
		types[spec.Name] = at
	}

	tr := tree.New()
	for _, category := range c.Categories {
		acctType, ok := types[category.Type]
		if !ok {
			return nil, fmt.Errorf("category %q: undeclared type %q", category.Name, category.Type)
		}
		id, err := tr.NewTagNode(1, category.Name, tr.Root(), acctType)
		if err != nil {
			return nil, err
		}
		tr.AddChild(tr.Root(), id)
		if category.Account {
			return nil, fmt.Errorf("category %q: a level 1 node cannot be an account", category.Name)
		}
		if err := buildChildren(tr, id, 2, category.Children); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func buildChildren(tr *tree.Tree, parent tree.NodeID, level int, specs []NodeSpec) error {
	for _, spec := range specs {
		if spec.Account {
			if len(spec.Children) > 0 {
				return fmt.Errorf("account %q may not have children", spec.Name)
			}
			id, err := tr.NewAccountNode(level, spec.Name, parent)
			if err != nil {
				return err
			}
			tr.AddChild(parent, id)
			continue
		}

		id, err := tr.NewTagNode(level, spec.Name, parent, nil)
		if err != nil {
			return err
		}
		tr.AddChild(parent, id)
		if err := buildChildren(tr, id, level+1, spec.Children); err != nil {
			return err
		}
	}
	return nil
}
