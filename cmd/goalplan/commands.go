package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	engine "github.com/avecbanker/backend/internal/domain/planning"
)

const dateLayout = "2006-01-02"

func newRebalanceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebalance",
		Short: "Allocate the envelope across every active goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			report, err := engine.Rebalance(s.Goals, s.Envelope, s.Cadence, s.Now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Envelope %s per %s, as of %s\n\n",
				money(s.Envelope), s.Cadence, s.Now.Format(dateLayout))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PRIORITY\tGOAL\tREMAINING\tCONTRIBUTION\tPERIODS\tCOMPLETES")
			for _, plan := range report.Plans {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					plan.Allocation.Priority,
					plan.Goal.Name,
					money(plan.Goal.Remaining()),
					money(plan.Allocation.Amount),
					periods(plan.Projection),
					completes(plan.Projection),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nUnallocated: %s\n", money(report.Remainder))
			printWarnings(out, report.Warnings)
			return nil
		},
	}
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Show what adding the scenario's hypothetical goal would change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}
			if s.Hypothetical == nil {
				return errors.New("scenario has no [hypothetical] goal")
			}

			report, err := engine.Simulate(s.Goals, s.Envelope, *s.Hypothetical, s.Cadence, s.Now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Adding %s at priority %d\n", report.Hypothetical.Name, report.Hypothetical.Priority)
			fmt.Fprintf(out, "  receives %s of %s requested per %s\n",
				money(report.HypotheticalAllocation.Amount),
				money(report.HypotheticalAllocation.Requested),
				s.Cadence)
			fmt.Fprintf(out, "  completes %s\n", completes(report.HypotheticalProjection))

			if report.Fits() {
				fmt.Fprintln(out, "\nFits without changing any existing goal.")
				return nil
			}
			if len(report.Impacts) == 0 {
				fmt.Fprintln(out, "\nNo existing goal changes, but the new goal is not fully funded.")
				return nil
			}

			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "GOAL\tBEFORE\tAFTER\tCHANGE\tPERIODS BEFORE\tPERIODS AFTER")
			for _, impact := range report.Impacts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					impact.Name,
					money(impact.Before),
					money(impact.After),
					money(impact.Delta),
					periodCount(impact.PeriodsBefore, impact.InfiniteBefore),
					periodCount(impact.PeriodsAfter, impact.InfiniteAfter),
				)
			}
			return tw.Flush()
		},
	}
}

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var (
		rate  string
		until string
	)

	cmd := &cobra.Command{
		Use:   "project <goal>",
		Short: "Project one goal by name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			g, err := engine.FindGoal(s.Goals, args[0])
			if err != nil {
				return err
			}

			perPeriod := g.MonthlyContribution
			if rate != "" {
				if perPeriod, err = decimal.NewFromString(rate); err != nil {
					return fmt.Errorf("invalid --rate %q: %w", rate, err)
				}
			}

			projection, err := engine.Project(g, perPeriod, s.Cadence, s.Now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s remaining at %s per %s\n",
				g.Name, money(projection.Remaining), money(perPeriod), s.Cadence)
			fmt.Fprintf(out, "  periods:   %s\n", periods(projection))
			fmt.Fprintf(out, "  completes: %s\n", completes(projection))

			if g.TargetDate != nil {
				fmt.Fprintf(out, "  target:    %s", g.TargetDate.Format(dateLayout))
				switch {
				case projection.Overdue:
					fmt.Fprint(out, " (overdue)")
				case !projection.MeetsTargetDate:
					fmt.Fprint(out, " (missed)")
				}
				fmt.Fprintln(out)

				if g.IsBounded() {
					deadline, err := engine.RequiredContribution(g, s.Envelope, s.Cadence, s.Now)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  required:  %s per period over %d periods",
						money(deadline.Required), deadline.PeriodsAvailable)
					if !deadline.Feasible {
						fmt.Fprintf(out, " (short %s)", money(deadline.Shortfall))
					}
					fmt.Fprintln(out)
				}
			}

			if until != "" {
				date, err := time.Parse(dateLayout, until)
				if err != nil {
					return fmt.Errorf("invalid --until %q: %w", until, err)
				}
				total, err := engine.AccumulatedBy(g, perPeriod, s.Cadence, s.Now, date)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  by %s:  %s\n", until, money(total))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "", "Contribution per period (default: the goal's contribution)")
	cmd.Flags().StringVar(&until, "until", "", "Also show the balance reached by this date (YYYY-MM-DD)")
	return cmd
}

func printWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out, "\nWarnings:")
	for _, w := range warnings {
		fmt.Fprintf(out, "  - %s\n", w)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func periods(p engine.Projection) string {
	return periodCount(p.Periods, p.Infinite)
}

func periodCount(n int, infinite bool) string {
	if infinite {
		return "never"
	}
	return fmt.Sprintf("%d", n)
}

func completes(p engine.Projection) string {
	if p.Infinite || p.ProjectedDate == nil {
		return "never"
	}
	return p.ProjectedDate.Format(dateLayout)
}
