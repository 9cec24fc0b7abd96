package ml

import (
	"context"

	"gonum.org/v1/gonum/floats"
)

// Primal 感知机学习算法原始形式，学习模型 f(x) = sign(w * x + b)
type Primal struct {
	base
	// 权值向量，维度与训练数据x的维度相同
	w []float64
}

var _ Trainer = &Primal{}

func NewPrimal(set *SampleSet, opts ...Option) (*Primal, error) {
	b, err := newBase(FormPrimal, set, opts)
	if err != nil {
		return nil, err
	}
	return &Primal{base: b, w: make([]float64, set.Dim())}, nil
}

func (p *Primal) Train(ctx context.Context) error {
	return p.train(ctx, p)
}

func (p *Primal) TrainOnePass() (int, bool) {
	return p.onePass(p)
}

// HasError yi * (w * xi + b) <= 0 为误分类
func (p *Primal) HasError(i int) bool {
	return p.margin(i, floats.Dot(p.w, p.set.data[i].x))
}

// GradientStep w <- w + η*yi*xi, b <- b + η*yi
func (p *Primal) GradientStep(i int) {
	s := &p.set.data[i]
	step := p.opts.learningRate * float64(s.y)
	floats.AddScaled(p.w, step, s.x)
	p.bias += step
}

func (p *Primal) W() []float64 {
	return append([]float64(nil), p.w...)
}

func (p *Primal) event(pass, index int) UpdateEvent {
	return UpdateEvent{Form: FormPrimal, Pass: pass, Index: index, W: p.W(), Bias: p.bias}
}
