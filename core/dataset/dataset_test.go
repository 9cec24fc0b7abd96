package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"perceptron/common"
	"perceptron/core/config"
	"perceptron/core/ml"
	"perceptron/core/ml/datasets"
)

func init() {
	common.SetLogConfig(&common.LogConfig{LogLevel: common.LEVEL_DEBUG, LogInConsole: true})
}

func TestReadCSV(t *testing.T) {
	in := `# x1, x2, y
3, 3, 1
4,3,1

1, 1, -1
`
	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, datasets.Textbook(), rows)

	_, err = ReadCSV(strings.NewReader("1,a,1\n"))
	assert.True(t, errors.Is(err, ml.ErrInvalidDataset))
}

func TestLoad(t *testing.T) {
	ss, err := Load(&config.DatasetConfig{})
	require.NoError(t, err)
	assert.Equal(t, 3, ss.Len())

	ss, err = Load(&config.DatasetConfig{Name: "scatter"})
	require.NoError(t, err)
	assert.Equal(t, 8, ss.Len())

	ss, err = Load(&config.DatasetConfig{Name: "scatter", Samples: [][]float64{{1, 1}, {-1, -1}}})
	require.NoError(t, err)
	assert.Equal(t, 2, ss.Len())
	assert.Equal(t, 1, ss.Dim())

	_, err = Load(&config.DatasetConfig{Name: "iris"})
	assert.True(t, errors.Is(err, datasets.ErrUnknownDataset))

	_, err = Load(&config.DatasetConfig{Samples: [][]float64{{1, 2, 3}}})
	assert.True(t, errors.Is(err, ml.ErrInvalidDataset))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("1,0,1\n0,1,-1\n"), 0o644))
	yamlFile := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("samples:\n  - [1, 0, 1]\n  - [0, 1, -1]\n"), 0o644))

	for _, f := range []string{csvFile, yamlFile} {
		ss, err := Load(&config.DatasetConfig{File: f, Name: "scatter"})
		require.NoError(t, err, f)
		assert.Equal(t, [][]float64{{1, 0, 1}, {0, 1, -1}}, ss.Rows(), f)
	}

	_, err := Load(&config.DatasetConfig{File: filepath.Join(dir, "absent.csv")})
	assert.Error(t, err)
}
