package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosa-dev/rosa/internal/config"
	"github.com/rosa-dev/rosa/internal/ledger"
	"github.com/rosa-dev/rosa/internal/model"
	"github.com/rosa-dev/rosa/internal/report"
)

const dateFormat = "2006-01-02"

func newReportCommand() *cobra.Command {
	var cfgPath string
	var source string
	var types string
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print totals, category breakdowns and monthly flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(cfgPath)
			if err != nil {
				return err
			}
			if source != "" {
				cfg.Source = source
			}

			f, err := parseFilterFlags(types, from, to)
			if err != nil {
				return err
			}

			return runReport(cmd, cfg, f)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "path to rosa.yaml")
	cmd.Flags().StringVar(&source, "source", "", "transaction CSV (overrides config)")
	cmd.Flags().StringVar(&types, "types", "", "comma-separated types to include (credit,debit)")
	cmd.Flags().StringVar(&from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date, inclusive (YYYY-MM-DD)")

	return cmd
}

func runReport(cmd *cobra.Command, cfg *config.Config, f report.Filter) error {
	snap, err := ledger.Load(cfg.Source, cfg.Table())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d of %d rows from %s\n\n", snap.Stats.Loaded, snap.Stats.Input, cfg.Source)

	txns := report.Apply(snap.Transactions, f)
	totals := report.Totals(txns)
	fmt.Fprintf(out, "Income:   %s\n", totals.Income)
	fmt.Fprintf(out, "Expenses: %s\n", totals.Expense)
	fmt.Fprintf(out, "Net:      %s\n", totals.Net)
	fmt.Fprintf(out, "Count:    %d\n", totals.Count)

	if spending := report.ByCategory(txns, model.TypeDebit); len(spending) > 0 {
		fmt.Fprintf(out, "\nSpending by category:\n")
		for _, cs := range spending {
			fmt.Fprintf(out, "  %-15s %s\n", cs.Category, cs.Amount)
		}
	}

	if income := report.ByCategory(txns, model.TypeCredit); len(income) > 0 {
		fmt.Fprintf(out, "\nIncome by category:\n")
		for _, cs := range income {
			fmt.Fprintf(out, "  %-15s %s\n", cs.Category, cs.Amount)
		}
	}

	if monthly := report.Monthly(txns); len(monthly) > 0 {
		fmt.Fprintf(out, "\nMonthly net flow:\n")
		for _, p := range monthly {
			fmt.Fprintf(out, "  %s  %s\n", p.Date.Format("2006-01"), p.Total)
		}
	}

	return nil
}

// parseFilterFlags converts the --types/--from/--to flags into a Filter.
func parseFilterFlags(types, from, to string) (report.Filter, error) {
	var f report.Filter

	if types != "" {
		for _, part := range strings.Split(types, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				f.Types = append(f.Types, model.TxnType(part))
			}
		}
	}

	var err error
	if from != "" {
		f.From, err = time.Parse(dateFormat, from)
		if err != nil {
			return f, fmt.Errorf("parsing --from %q: %w", from, err)
		}
	}
	if to != "" {
		f.To, err = time.Parse(dateFormat, to)
		if err != nil {
			return f, fmt.Errorf("parsing --to %q: %w", to, err)
		}
	}
	return f, nil
}
