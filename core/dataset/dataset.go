package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"perceptron/common"
	"perceptron/core/config"
	"perceptron/core/ml"
	"perceptron/core/ml/datasets"
)

// Load 训练集来源优先级：数据文件 > 配置中的samples > 内置数据集
func Load(c *config.DatasetConfig) (*ml.SampleSet, error) {
	log := common.GetLogger(common.MODULE_DATASET)

	var (
		rows   [][]float64
		source string
		err    error
	)
	switch {
	case c.File != "":
		source = c.File
		rows, err = ReadFile(c.File)
	case len(c.Samples) > 0:
		source = "config samples"
		rows = c.Samples
	default:
		name := c.Name
		if name == "" {
			name = config.DefaultDataset
		}
		source = "builtin " + name
		rows, err = datasets.Lookup(name)
	}
	if err != nil {
		return nil, err
	}

	ss, err := ml.NewSampleSet(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", source)
	}
	log.Infof("loaded %d samples of dim %d from %s", ss.Len(), ss.Dim(), source)
	return ss, nil
}

// ReadFile .csv/.txt 按行读取，.yaml/.json/.toml 读取其中的 samples 项
func ReadFile(path string) ([][]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".toml":
		return readStructured(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return rows, nil
}

func readStructured(path string) ([][]float64, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var rows [][]float64
	if err := v.UnmarshalKey("samples", &rows); err != nil {
		return nil, errors.Wrapf(err, "decode samples of %s", path)
	}
	return rows, nil
}

// ReadCSV 每行一个实例点，前d列为特征，最后一列为标记；空行与#开头的行忽略
func ReadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ml.ErrInvalidDataset, "csv: %s", err)
		}
		row := make([]float64, len(record))
		for i, field := range record {
			row[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(ml.ErrInvalidDataset, "record %d field %d: %s", line, i, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
