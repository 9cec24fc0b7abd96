package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"perceptron/common"
	"perceptron/core/config"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag   string
	formFlag      string
	rateFlag      float64
	biasFlag      float64
	maxPassesFlag int
	datasetFlag   string
	fileFlag      string
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "",
		"perceptron config file, default perceptron_config.yaml under $PERCEPTRON_CFG_PATH")
	flags.StringVarP(&formFlag, "form", "f", "primal",
		"perceptron form: primal or dual")
	flags.Float64VarP(&rateFlag, "rate", "r", 1,
		"learning rate, must be positive")
	flags.Float64VarP(&biasFlag, "bias", "b", 0,
		"initial bias")
	flags.IntVarP(&maxPassesFlag, "max-passes", "m", 0,
		"max scans over the dataset before giving up, 0 for no limit")
	flags.StringVarP(&datasetFlag, "dataset", "d", "textbook",
		"builtin dataset: textbook, scatter or xor")
	flags.StringVar(&fileFlag, "file", "",
		"dataset file (.csv, .yaml, .json or .toml), overrides --dataset")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("Could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:          "perceptron",
		Short:        "perceptron learning in primal and dual form",
		SilenceUsage: true,
	}
	mainCmd.AddCommand(trainCMD())
	mainCmd.AddCommand(compareCMD())
	mainCmd.AddCommand(gramCMD())
	return mainCmd
}

// initConfig 读取配置并设置日志
func initConfig(cmd *cobra.Command) (*config.LocalConfig, error) {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return nil, err
	}
	logConfig, err := lc.LogConfig()
	if err != nil {
		return nil, err
	}
	common.SetLogConfig(logConfig)
	return lc, nil
}

func main() {
	//Ctrl-C 中断训练
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newMainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
