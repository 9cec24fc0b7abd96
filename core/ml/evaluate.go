package ml

import (
	"gonum.org/v1/gonum/floats"
)

// Decision w * x + b
func Decision(w []float64, b float64, x []float64) float64 {
	return floats.Dot(w, x) + b
}

// Classify f(x) = sign(w * x + b)，等于0时归为负类
func Classify(w []float64, b float64, x []float64) Label {
	if Decision(w, b, x) > 0 {
		return PN
	}
	return NN
}

// DecisionValues 训练集每个实例点的 w * xi + b
func DecisionValues(t Trainer, set *SampleSet) []float64 {
	w, b := t.W(), t.Bias()
	res := make([]float64, set.Len())
	for i := range res {
		res[i] = Decision(w, b, set.data[i].x)
	}
	return res
}

// Margins 训练集每个实例点的函数间隔 yi * (w * xi + b)
func Margins(t Trainer, set *SampleSet) []float64 {
	res := DecisionValues(t, set)
	for i := range res {
		res[i] *= float64(set.data[i].y)
	}
	return res
}
