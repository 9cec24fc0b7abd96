package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"perceptron/core/config"
	"perceptron/core/ml"
	"perceptron/session"
)

func train(cmd *cobra.Command) error {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return err
	}

	s := &session.Session{}
	defer s.Close()
	if err := s.Init(lc); err != nil {
		return err
	}

	res, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(out io.Writer, res *session.Result) {
	fmt.Fprintf(out, "form: %s\n", res.Form)
	fmt.Fprintf(out, "w: %v\n", res.W)
	fmt.Fprintf(out, "b: %v\n", res.Bias)
	if res.Form == ml.FormDual {
		fmt.Fprintf(out, "alpha: %v\n", res.Alpha)
	}
	fmt.Fprintf(out, "passes: %d updates: %d\n", res.Passes, res.Updates)
	for i, v := range res.DecisionValues {
		fmt.Fprintf(out, "sample %d: w*x+b = %v\n", i, v)
	}
}

func trainCMD() *cobra.Command {
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "train a perceptron",
		Long:  "train a perceptron on a linearly separable dataset and print w, b",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return train(cmd)
		},
	}
	flagList := []string{
		"config", "form", "rate", "bias", "max-passes", "dataset", "file",
	}
	attachFlags(trainCmd, flagList)
	return trainCmd
}
