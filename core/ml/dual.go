package ml

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dual 感知机学习算法对偶形式
//
//	f(x) = sign( Σ_j α_j y_j x_j·x + b )
//
// α_i = n_i*η，n_i为实例点i被选作误分类点修正的次数
type Dual struct {
	base
	alpha []float64
	// gram 训练集实例点两两内积，构造时计算一次，之后只读
	gram *mat.SymDense
}

var _ Trainer = &Dual{}

func NewDual(set *SampleSet, opts ...Option) (*Dual, error) {
	b, err := newBase(FormDual, set, opts)
	if err != nil {
		return nil, err
	}
	return &Dual{
		base:  b,
		alpha: make([]float64, set.Len()),
		gram:  calGram(set),
	}, nil
}

// calGram 内积只计算特征部分，不包括标记
func calGram(set *SampleSet) *mat.SymDense {
	n := set.Len()
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			g.SetSym(i, j, floats.Dot(set.data[i].x, set.data[j].x))
		}
	}
	return g
}

func (d *Dual) Train(ctx context.Context) error {
	return d.train(ctx, d)
}

func (d *Dual) TrainOnePass() (int, bool) {
	return d.onePass(d)
}

// HasError yi * (Σ_j α_j y_j G[i][j] + b) <= 0 为误分类
func (d *Dual) HasError(i int) bool {
	score := 0.0
	for j, a := range d.alpha {
		if a == 0 {
			continue
		}
		score += a * float64(d.set.data[j].y) * d.gram.At(i, j)
	}
	return d.margin(i, score)
}

// GradientStep α_i <- α_i + η, b <- b + η*yi
func (d *Dual) GradientStep(i int) {
	d.alpha[i] += d.opts.learningRate
	d.bias += d.opts.learningRate * float64(d.set.data[i].y)
}

// W 由α求得 w = Σ_i α_i y_i x_i，每次调用都重新计算
func (d *Dual) W() []float64 {
	w := make([]float64, d.set.Dim())
	for i, a := range d.alpha {
		floats.AddScaled(w, a*float64(d.set.data[i].y), d.set.data[i].x)
	}
	return w
}

func (d *Dual) Alpha() []float64 {
	return append([]float64(nil), d.alpha...)
}

func (d *Dual) Gram() [][]float64 {
	n := d.set.Len()
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, n)
		for j := range g[i] {
			g[i][j] = d.gram.At(i, j)
		}
	}
	return g
}

// SupportIndices α非零的实例点，即训练中曾被误分类的点
func (d *Dual) SupportIndices() []int {
	var idx []int
	for i, a := range d.alpha {
		if a != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func (d *Dual) event(pass, index int) UpdateEvent {
	return UpdateEvent{Form: FormDual, Pass: pass, Index: index, W: d.W(), Bias: d.bias, Alpha: d.Alpha()}
}
