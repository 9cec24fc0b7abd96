package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"perceptron/common"
	"perceptron/core/config"
	"perceptron/core/ml"
	"perceptron/core/ml/datasets"
)

func testConfig(form string) *config.LocalConfig {
	return &config.LocalConfig{
		Log:     config.LogConfig{Level: "DEBUG", InConsole: true},
		Train:   config.TrainConfig{Form: form, LearningRate: 1},
		Dataset: config.DatasetConfig{Name: "textbook"},
	}
}

func TestSession_Run(t *testing.T) {
	for _, form := range []string{"primal", "dual"} {
		s := &Session{}
		require.NoError(t, s.Init(testConfig(form)))

		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ml.Form(form), res.Form)
		assert.Equal(t, []float64{1, 1}, res.W)
		assert.Equal(t, -3.0, res.Bias)
		assert.Equal(t, 7, res.Updates)
		assert.Equal(t, []float64{3, 4, -1}, res.DecisionValues)
		assert.Equal(t, []float64{3, 4, 1}, res.Margins)
		if form == "dual" {
			assert.Equal(t, []float64{2, 0, 5}, res.Alpha)
		} else {
			assert.Nil(t, res.Alpha)
		}

		history := s.History()
		require.Len(t, history, 7)
		idx := make([]int, len(history))
		for i, ev := range history {
			idx[i] = ev.Index
			assert.Equal(t, i+1, ev.Pass)
		}
		assert.Equal(t, []int{0, 2, 2, 2, 0, 2, 2}, idx)
		s.Close()
	}
}

func TestSession_NonConvergence(t *testing.T) {
	c := testConfig("dual")
	c.Dataset.Name = "xor"
	c.Train.MaxPasses = 20

	s := &Session{}
	require.NoError(t, s.Init(c))
	defer s.Close()

	res, err := s.Run(context.Background())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ml.ErrNonConvergence))
	assert.Len(t, s.History(), 20)
}

func TestSession_InitErrors(t *testing.T) {
	c := testConfig("kernel")
	assert.True(t, errors.Is((&Session{}).Init(c), ml.ErrUnknownForm))

	c = testConfig("primal")
	c.Train.LearningRate = 0
	assert.True(t, errors.Is((&Session{}).Init(c), ml.ErrInvalidDataset))

	c = testConfig("primal")
	c.Dataset.Samples = [][]float64{{1, 1, 2}}
	assert.True(t, errors.Is((&Session{}).Init(c), ml.ErrInvalidDataset))
}

func TestCompare(t *testing.T) {
	for _, rows := range [][][]float64{
		datasets.Textbook(),
		{{2, 1, 1}, {1, 3, 1}, {-1, -1, -1}, {-2, 1, -1}, {0, -3, -1}},
	} {
		set, err := ml.NewSampleSet(rows)
		require.NoError(t, err)

		c, err := Compare(context.Background(), set, ml.WithLearningRate(0.5), ml.WithBias(0.5))
		require.NoError(t, err)
		assert.True(t, c.Equivalent())
		assert.Equal(t, c.PrimalIndexes, c.DualIndexes)
		assert.NotEmpty(t, c.Dual.Alpha)
	}

	set, err := ml.NewSampleSet(datasets.XOR())
	require.NoError(t, err)
	_, err = Compare(context.Background(), set, ml.WithMaxPasses(10))
	assert.True(t, errors.Is(err, ml.ErrNonConvergence))
}

func TestSession_InitFailureStopsBus(t *testing.T) {
	c := testConfig("primal")
	c.Dataset.Name = "iris"

	s := &Session{}
	require.Error(t, s.Init(c))
	require.NotNil(t, s.msgBus)

	//总线已停止，发布的消息不会再被记录
	s.msgBus.Publish("run", common.TrainMsg_Update, ml.UpdateEvent{})
	assert.Empty(t, s.History())
	assert.NotPanics(t, s.Close)
	assert.NotPanics(t, (&Session{}).Close)
}
