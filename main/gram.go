package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"perceptron/core/dataset"
	"perceptron/core/ml"
)

func gram(cmd *cobra.Command) error {
	lc, err := initConfig(cmd)
	if err != nil {
		return err
	}
	set, err := dataset.Load(&lc.Dataset)
	if err != nil {
		return err
	}
	d, err := ml.NewDual(set)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, row := range d.Gram() {
		fmt.Fprintln(out, row)
	}
	return nil
}

func gramCMD() *cobra.Command {
	gramCmd := &cobra.Command{
		Use:   "gram",
		Short: "print the gram matrix of a dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gram(cmd)
		},
	}
	attachFlags(gramCmd, []string{"config", "dataset", "file"})
	return gramCmd
}
