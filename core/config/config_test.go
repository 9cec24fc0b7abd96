package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"perceptron/common"
	"perceptron/core/ml"
)

const testConfig = `
log:
  level: warn
  module_level:
    trainer: debug
train:
  form: dual
  learning_rate: 0.5
  initial_bias: 1
  max_passes: 200
dataset:
  samples:
    - [3, 3, 1]
    - [4, 3, 1]
    - [1, 1, -1]
`

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().StringP("form", "f", "", "")
	cmd.Flags().Float64P("rate", "r", 1, "")
	cmd.Flags().StringP("dataset", "d", DefaultDataset, "")
	return cmd
}

func TestInitLocalConfig_Defaults(t *testing.T) {
	t.Setenv(cfgPathEnv, t.TempDir())

	lc, err := InitLocalConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "primal", lc.Train.Form)
	assert.Equal(t, 1.0, lc.Train.LearningRate)
	assert.Equal(t, 0, lc.Train.MaxPasses)
	assert.Equal(t, DefaultDataset, lc.Dataset.Name)
	assert.Empty(t, lc.Dataset.Samples)

	logConf, err := lc.LogConfig()
	require.NoError(t, err)
	assert.Equal(t, common.LEVEL_INFO, logConf.LogLevel)
	assert.Equal(t, "", logConf.LogPath)
}

func TestInitLocalConfig_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfgName+".yaml"), []byte(testConfig), 0o644))
	t.Setenv(cfgPathEnv, dir)

	lc, err := InitLocalConfig(newTestCmd())
	require.NoError(t, err)
	assert.Equal(t, "dual", lc.Train.Form)
	assert.Equal(t, 0.5, lc.Train.LearningRate)
	assert.Equal(t, 1.0, lc.Train.InitialBias)
	assert.Equal(t, 200, lc.Train.MaxPasses)
	assert.Equal(t, [][]float64{{3, 3, 1}, {4, 3, 1}, {1, 1, -1}}, lc.Dataset.Samples)

	logConf, err := lc.LogConfig()
	require.NoError(t, err)
	assert.Equal(t, common.LEVEL_WARN, logConf.LogLevel)
	assert.Equal(t, common.LEVEL_DEBUG, logConf.ModuleSpecialLevel[common.MODULE_TRAINER])

	form, opts, err := lc.TrainOptions()
	require.NoError(t, err)
	assert.Equal(t, ml.FormDual, form)
	assert.Len(t, opts, 3)
}

func TestInitLocalConfig_FlagAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testConfig), 0o644))
	t.Setenv(cfgPathEnv, t.TempDir())
	t.Setenv("PERCEPTRON_TRAIN_MAX_PASSES", "7")

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("config", file))
	require.NoError(t, cmd.Flags().Set("form", "primal"))

	lc, err := InitLocalConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "primal", lc.Train.Form)
	//未设置的flag不覆盖配置文件
	assert.Equal(t, 0.5, lc.Train.LearningRate)
	assert.Equal(t, 7, lc.Train.MaxPasses)
}

func TestInitLocalConfig_MissingFile(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "absent.yaml")))
	_, err := InitLocalConfig(cmd)
	assert.Error(t, err)
}

func TestLogConfig_Invalid(t *testing.T) {
	lc := &LocalConfig{Log: LogConfig{Level: "LOUD"}}
	_, err := lc.LogConfig()
	assert.Error(t, err)

	lc = &LocalConfig{Log: LogConfig{Level: "INFO", BriefMode: "test"}}
	_, err = lc.LogConfig()
	assert.Error(t, err)

	lc = &LocalConfig{Train: TrainConfig{Form: "kernel"}}
	_, _, err = lc.TrainOptions()
	assert.Error(t, err)
}

func TestInitLocalConfig_DatasetFlagOverSamples(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfgName+".yaml"), []byte(testConfig), 0o644))
	t.Setenv(cfgPathEnv, dir)

	lc, err := InitLocalConfig(newTestCmd())
	require.NoError(t, err)
	assert.Len(t, lc.Dataset.Samples, 3)

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("dataset", "xor"))
	lc, err = InitLocalConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "xor", lc.Dataset.Name)
	assert.Empty(t, lc.Dataset.Samples)
}
