package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ledgertree-dev/ledgertree/internal/auditlog"
	"github.com/ledgertree-dev/ledgertree/internal/chart"
	"github.com/ledgertree-dev/ledgertree/internal/config"
	"github.com/ledgertree-dev/ledgertree/internal/journalio"
	"github.com/ledgertree-dev/ledgertree/internal/ledger"
	"github.com/ledgertree-dev/ledgertree/internal/report"
	"github.com/ledgertree-dev/ledgertree/internal/store"
	"github.com/ledgertree-dev/ledgertree/internal/tree"
)

func newBalanceCommand() *cobra.Command {
	var lhs []string
	var rhs []string

	cmd := &cobra.Command{
		Use:   "balance [directory]",
		Short: "Build the balance sheet for the configured period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runBalance(cmd.OutOrStdout(), dir, lhs, rhs)
		},
	}

	cmd.Flags().StringSliceVar(&lhs, "lhs", []string{"Assets"},
		"accounts on the left-hand side of the accounting equation")
	cmd.Flags().StringSliceVar(&rhs, "rhs", []string{"Liabilities", "Owner's Equity"},
		"accounts on the right-hand side of the accounting equation")

	return cmd
}

func runBalance(out io.Writer, dir string, lhs, rhs []string) error {
	cfg, err := config.Load(filepath.Join(dir, "ledgertree.yaml"))
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		configureLogging(cfg.LogLevel)
	}

	from, to, err := cfg.Period.Window()
	if err != nil {
		return err
	}

	c, err := chart.Load(filepath.Join(dir, cfg.ChartFile))
	if err != nil {
		return err
	}
	tr, err := c.BuildTree()
	if err != nil {
		return fmt.Errorf("building accounting tree: %w", err)
	}

	reader, cleanup, err := openReader(dir, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sheet, err := report.NewFromReader(1, from, to, tr, reader)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"from":    cfg.Period.From,
		"to":      cfg.Period.To,
		"entries": sheet.Ledger().NumberOfJournalEntries(),
	}).Info("Building balance sheet")

	if err := sheet.Build(); err != nil {
		return fmt.Errorf("building balance sheet: %w", err)
	}

	printTree(out, tr, tr.Root(), 0)

	balanced, err := sheet.IsBalanced(lhs, rhs)
	if err != nil {
		return err
	}
	lhsTotal, err := sheet.AccountsTotal(lhs...)
	if err != nil {
		return err
	}
	rhsTotal, err := sheet.AccountsTotal(rhs...)
	if err != nil {
		return err
	}

	verdict := "BALANCED"
	if !balanced {
		verdict = "NOT BALANCED"
	}
	fmt.Fprintf(out, "\n%s = %s | %s = %s | %s\n",
		strings.Join(lhs, " + "), lhsTotal, strings.Join(rhs, " + "), rhsTotal, verdict)

	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    "balance",
		From:      from,
		To:        to,
		LedgerID:  sheet.Ledger().ID(),
		Entries:   sheet.Ledger().NumberOfJournalEntries(),
		Balanced:  balanced,
		Details:   fmt.Sprintf("%s = %s vs %s", strings.Join(lhs, " + "), lhsTotal, rhsTotal),
	}
	if err := auditlog.Append(dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording build: %w", err)
	}

	if !balanced {
		return fmt.Errorf("books do not balance: %s = %s, %s = %s",
			strings.Join(lhs, " + "), lhsTotal, strings.Join(rhs, " + "), rhsTotal)
	}
	return nil
}

// openReader selects the journal backend from the config. The cleanup func
// closes the backend when it holds resources.
func openReader(dir string, cfg *config.Config) (ledger.Reader, func(), error) {
	path := filepath.Join(dir, cfg.Journal.Path)
	switch cfg.Journal.Source {
	case "csv":
		return journalio.NewFileReader(path, 1), func() {}, nil
	case "sqlite":
		s, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown journal source %q", cfg.Journal.Source)
	}
}

func printTree(out io.Writer, tr *tree.Tree, id tree.NodeID, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(out, "%s%s: %s\n", indent, tr.Name(id), tr.Amount(id))
	for _, child := range tr.Children(id) {
		printTree(out, tr, child, depth+1)
	}
}
