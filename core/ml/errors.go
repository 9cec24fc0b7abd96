package ml

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDataset 训练集或超参数不合法
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrNonConvergence 超过最大扫描轮数仍存在误分类点，通常是数据线性不可分
	ErrNonConvergence = errors.New("perceptron did not converge")
	ErrCanceled       = errors.New("training canceled")
	ErrUnknownForm    = errors.New("unknown perceptron form")
)
