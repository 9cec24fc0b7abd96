package session

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"perceptron/core/ml"
)

const compareTol = 1e-9

// Comparison 同一训练集上原始形式与对偶形式的对比
type Comparison struct {
	Primal, Dual *Result
	// Indexes 两种形式各自依次修正的实例点
	PrimalIndexes, DualIndexes []int

	SameW        bool
	SameBias     bool
	SameSequence bool
}

func (c *Comparison) Equivalent() bool {
	return c.SameW && c.SameBias && c.SameSequence
}

// Compare 用相同的超参数分别训练两种形式
func Compare(ctx context.Context, set *ml.SampleSet, opts ...ml.Option) (*Comparison, error) {
	c := &Comparison{}
	var err error
	c.Primal, c.PrimalIndexes, err = trainForm(ctx, ml.FormPrimal, set, opts)
	if err != nil {
		return nil, err
	}
	c.Dual, c.DualIndexes, err = trainForm(ctx, ml.FormDual, set, opts)
	if err != nil {
		return nil, err
	}

	c.SameW = floats.EqualApprox(c.Primal.W, c.Dual.W, compareTol)
	c.SameBias = scalar.EqualWithinAbs(c.Primal.Bias, c.Dual.Bias, compareTol)
	c.SameSequence = len(c.PrimalIndexes) == len(c.DualIndexes)
	for i := 0; c.SameSequence && i < len(c.PrimalIndexes); i++ {
		c.SameSequence = c.PrimalIndexes[i] == c.DualIndexes[i]
	}
	return c, nil
}

func trainForm(ctx context.Context, form ml.Form, set *ml.SampleSet, opts []ml.Option) (*Result, []int, error) {
	var idx []int
	all := append(append([]ml.Option(nil), opts...), ml.WithObserver(func(ev ml.UpdateEvent) {
		idx = append(idx, ev.Index)
	}))
	t, err := ml.NewTrainer(form, set, all...)
	if err != nil {
		return nil, nil, err
	}
	if err := t.Train(ctx); err != nil {
		return nil, nil, err
	}
	return newResult(t, set), idx, nil
}
