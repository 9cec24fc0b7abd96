package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"perceptron/common"
	"perceptron/core/ml"
)

const (
	envPrefix      = "perceptron"
	cfgPathEnv     = "PERCEPTRON_CFG_PATH"
	cfgName        = "perceptron_config"
	DefaultDataset = "textbook"
)

type LogConfig struct {
	BriefMode      string            `mapstructure:"brief_mode"`
	Level          string            `mapstructure:"level"`
	ModuleLevel    map[string]string `mapstructure:"module_level"`
	Path           string            `mapstructure:"path"`
	RotationMaxAge int               `mapstructure:"rotation_max_age"`
	RotationTime   int               `mapstructure:"rotation_time"`
	RotationSize   int               `mapstructure:"rotation_size"`
	ShowLine       bool              `mapstructure:"show_line"`
	InConsole      bool              `mapstructure:"in_console"`
}

type TrainConfig struct {
	Form         string  `mapstructure:"form"`
	LearningRate float64 `mapstructure:"learning_rate"`
	InitialBias  float64 `mapstructure:"initial_bias"`
	// MaxPasses 0为不设上限
	MaxPasses int `mapstructure:"max_passes"`
}

type DatasetConfig struct {
	Name    string      `mapstructure:"name"`
	File    string      `mapstructure:"file"`
	Samples [][]float64 `mapstructure:"samples"`
}

type LocalConfig struct {
	Log     LogConfig     `mapstructure:"log"`
	Train   TrainConfig   `mapstructure:"train"`
	Dataset DatasetConfig `mapstructure:"dataset"`
}

// 命令行flag与配置项的对应关系
var flagKeys = map[string]string{
	"form":       "train.form",
	"rate":       "train.learning_rate",
	"bias":       "train.initial_bias",
	"max-passes": "train.max_passes",
	"dataset":    "dataset.name",
	"file":       "dataset.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.brief_mode", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.path", "")
	v.SetDefault("log.rotation_max_age", 7)
	v.SetDefault("log.rotation_time", 24)
	v.SetDefault("log.rotation_size", 30)
	v.SetDefault("log.show_line", false)
	v.SetDefault("log.in_console", true)

	v.SetDefault("train.form", string(ml.FormPrimal))
	v.SetDefault("train.learning_rate", 1.0)
	v.SetDefault("train.initial_bias", 0.0)
	v.SetDefault("train.max_passes", 0)

	v.SetDefault("dataset.name", DefaultDataset)
	v.SetDefault("dataset.file", "")
}

// InitLocalConfig 读取配置，优先级：命令行flag > 环境变量 > 配置文件 > 默认值
func InitLocalConfig(cmd *cobra.Command) (*LocalConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//若命令行设置了配置文件，则直接使用
	//若未设置，则在PERCEPTRON_CFG_PATH下寻找perceptron_config.yaml，找不到时使用默认配置
	altPath := os.Getenv(cfgPathEnv)
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName(cfgName)

	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil && flag.Value.String() != "" {
			v.SetConfigFile(flag.Value.String())
		}
		for name, key := range flagKeys {
			if flag := cmd.Flags().Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	lc := &LocalConfig{}
	if err := v.Unmarshal(lc); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	//命令行明确指定的内置数据集优先于配置文件中的samples
	if cmd != nil && cmd.Flags().Changed("dataset") {
		lc.Dataset.Samples = nil
	}
	return lc, nil
}

func parseLevel(s string) (common.LOG_LEVEL, error) {
	level, ok := common.LOG_LEVEL_Value[strings.ToUpper(s)]
	if !ok {
		return common.LEVEL_INFO, errors.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// LogConfig 模块级别在配置中写作 trainer: DEBUG
func (c *LocalConfig) LogConfig() (*common.LogConfig, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	lc := &common.LogConfig{
		BriefMode:          strings.ToUpper(c.Log.BriefMode),
		ModuleSpecialLevel: make(map[string]common.LOG_LEVEL),
		LogPath:            c.Log.Path,
		LogLevel:           level,
		RotationMaxAge:     c.Log.RotationMaxAge,
		RotationTime:       c.Log.RotationTime,
		RotationSize:       c.Log.RotationSize,
		ShowLine:           c.Log.ShowLine,
		LogInConsole:       c.Log.InConsole,
	}
	if lc.BriefMode != "" && lc.BriefMode != common.LOG_MODE_DEV && lc.BriefMode != common.LOG_MODE_PROD {
		return nil, errors.Errorf("unknown log brief mode %q", c.Log.BriefMode)
	}

	modules := []string{common.MODULE_TRAINER, common.MODULE_DATASET, common.MODULE_SESSION, common.MODULE_MSGBUS}
	for _, m := range modules {
		s, ok := c.Log.ModuleLevel[strings.ToLower(strings.Trim(m, "[]"))]
		if !ok {
			continue
		}
		if lc.ModuleSpecialLevel[m], err = parseLevel(s); err != nil {
			return nil, errors.Wrapf(err, "module %s", m)
		}
	}
	return lc, nil
}

// TrainOptions 把训练配置转换为训练器选项
func (c *LocalConfig) TrainOptions() (ml.Form, []ml.Option, error) {
	form, err := ml.ParseForm(c.Train.Form)
	if err != nil {
		return "", nil, err
	}
	return form, []ml.Option{
		ml.WithLearningRate(c.Train.LearningRate),
		ml.WithBias(c.Train.InitialBias),
		ml.WithMaxPasses(c.Train.MaxPasses),
	}, nil
}
