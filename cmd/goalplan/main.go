// Command goalplan runs the goal planner against a scenario file, without a server
// or database.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	scenarioPath string
	envelope     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "goalplan",
		Short:        "Offline goal planner",
		Long:         "Allocate a budgeting envelope across goals and project when each one completes.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.scenarioPath, "scenario", "s", "scenario.toml", "Scenario file (TOML)")
	cmd.PersistentFlags().StringVarP(&opts.envelope, "envelope", "e", "", "Override the scenario envelope per period")

	cmd.AddCommand(
		newRebalanceCmd(opts),
		newSimulateCmd(opts),
		newProjectCmd(opts),
	)
	return cmd
}

// load reads the scenario and applies command-line overrides.
func (o *rootOptions) load() (*scenario, error) {
	s, err := loadScenario(o.scenarioPath)
	if err != nil {
		return nil, err
	}
	if o.envelope != "" {
		envelope, err := decimal.NewFromString(o.envelope)
		if err != nil {
			return nil, fmt.Errorf("invalid --envelope %q: %w", o.envelope, err)
		}
		s.Envelope = envelope
	}
	return s, nil
}
