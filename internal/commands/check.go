package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgertree-dev/ledgertree/internal/auditlog"
	"github.com/ledgertree-dev/ledgertree/internal/config"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [directory]",
		Short: "Verify every journal entry balances debits against credits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runCheck(cmd.OutOrStdout(), dir)
		},
	}
}

func runCheck(out io.Writer, dir string) error {
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

	reader, cleanup, err := openReader(dir, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	l, err := reader.ReadByDateRange(from, to)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	unbalanced := 0
	details := "all entries balance"
	for _, journal := range l.JournalEntries() {
		if journal.Validate() {
			continue
		}
		unbalanced++
		imbalance := journal.Imbalance()
		fmt.Fprintf(out, "journal entry %d (%s) out of balance by %s\n",
			journal.ID(), journal.Description(), imbalance)
		details = fmt.Sprintf("%d entries out of balance", unbalanced)
	}

	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    "check",
		From:      from,
		To:        to,
		LedgerID:  l.ID(),
		Entries:   l.NumberOfJournalEntries(),
		Balanced:  unbalanced == 0,
		Details:   details,
	}
	if err := auditlog.Append(dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording check: %w", err)
	}

	if unbalanced > 0 {
		return fmt.Errorf("%d of %d journal entries out of balance", unbalanced, l.NumberOfJournalEntries())
	}
	fmt.Fprintf(out, "%d journal entries, all balanced\n", l.NumberOfJournalEntries())
	return nil
}
