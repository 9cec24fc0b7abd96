package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"perceptron/core/dataset"
	"perceptron/session"
)

func compare(cmd *cobra.Command) error {
	lc, err := initConfig(cmd)
	if err != nil {
		return err
	}
	set, err := dataset.Load(&lc.Dataset)
	if err != nil {
		return err
	}
	_, opts, err := lc.TrainOptions()
	if err != nil {
		return err
	}

	c, err := session.Compare(cmd.Context(), set, opts...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printResult(out, c.Primal)
	printResult(out, c.Dual)
	fmt.Fprintf(out, "primal fixes: %v\n", c.PrimalIndexes)
	fmt.Fprintf(out, "dual fixes:   %v\n", c.DualIndexes)
	fmt.Fprintf(out, "same w: %t, same b: %t, same sequence: %t\n", c.SameW, c.SameBias, c.SameSequence)
	if !c.Equivalent() {
		return fmt.Errorf("primal and dual forms diverged")
	}
	return nil
}

func compareCMD() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "train both forms and compare",
		Long:  "train the primal and the dual form with the same hyperparameters and check they learn the same w, b",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return compare(cmd)
		},
	}
	attachFlags(compareCmd, []string{"config", "rate", "bias", "max-passes", "dataset", "file"})
	return compareCmd
}
