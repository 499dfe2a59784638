// basketsim runs scripted scenarios against an in-process basket vault:
// deposits, redemptions, staking accrual and rebalances over simulated
// liquidity pools, with the closing valuation printed at the end.
package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "basketsim",
		Short:         "Simulate a basket vault against scripted scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(runCmd(), initCmd())
	return cmd
}

func runCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(configPath)
			if err != nil {
				return err
			}

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := log.NewLogger(cmd.OutOrStdout(), log.LevelOption(level))

			sim, err := BuildSim(sc, logger)
			if err != nil {
				return err
			}
			return sim.Run(sc)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "scenario.toml", "path to the scenario file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-swap detail")
	return cmd
}

func initCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists", configPath)
			}
			if err := WriteExampleScenario(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "scenario.toml", "path to write")
	return cmd
}
