package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgertree-dev/ledgertree/internal/chart"
	"github.com/ledgertree-dev/ledgertree/internal/config"
	"github.com/ledgertree-dev/ledgertree/internal/journalio"
)

func newInitCommand() *cobra.Command {
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgertree project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, from, to)
		},
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	cmd.Flags().StringVar(&from, "from", monthStart.Format("2006-01-02"), "start of the reporting period")
	cmd.Flags().StringVar(&to, "to", monthEnd.Format("2006-01-02"), "end of the reporting period")

	return cmd
}

func runInit(out io.Writer, dir, from, to string) error {
	period := config.PeriodConfig{From: from, To: to}
	fromDate, toDate, err := period.Window()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	cfg := config.Default(fromDate, toDate)
	if err := config.Save(filepath.Join(dir, "ledgertree.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := chart.Save(filepath.Join(dir, cfg.ChartFile), chart.Default()); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, cfg.Journal.Path))
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer f.Close()
	if err := journalio.WriteJournal(f, nil); err != nil {
		return fmt.Errorf("writing journal header: %w", err)
	}

	fmt.Fprintf(out, "Initialized ledgertree project at %s (%s to %s)\n", dir, from, to)
	return nil
}
