package ml

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleSet(t *testing.T) {
	rows := [][]float64{{3, 3, 1}, {4, 3, 1}, {1, 1, -1}}
	ss, err := NewSampleSet(rows)
	require.NoError(t, err)

	assert.Equal(t, 3, ss.Len())
	assert.Equal(t, 2, ss.Dim())
	assert.Equal(t, []float64{4, 3}, ss.X(1))
	assert.Equal(t, NN, ss.Y(2))
	assert.Equal(t, rows, ss.Rows())

	//训练集拷贝了输入，修改原数据不影响训练集
	rows[0][0] = 100
	assert.Equal(t, []float64{3, 3}, ss.X(0))
	x := ss.X(0)
	x[1] = 100
	assert.Equal(t, []float64{3, 3}, ss.X(0))
}

func TestNewSampleSet_Invalid(t *testing.T) {
	cases := map[string][][]float64{
		"empty":          {},
		"label only":     {{1}},
		"ragged":         {{1, 2, 1}, {1, -1}},
		"label out of":   {{1, 2, 1}, {3, 4, 0}},
		"label fraction": {{1, 2, 0.5}},
		"nan feature":    {{1, 2, 1}, {math.NaN(), 0, -1}},
		"inf feature":    {{math.Inf(1), 2, 1}},
		"-inf feature":   {{1, math.Inf(-1), -1}},
	}
	for name, rows := range cases {
		_, err := NewSampleSet(rows)
		assert.True(t, errors.Is(err, ErrInvalidDataset), name)
	}
}
