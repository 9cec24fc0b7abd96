package ml

import (
	"math"

	"github.com/pkg/errors"
)

type Label int

const (
	PN Label = 1
	NN Label = -1
)

func (l Label) String() string {
	if l == PN {
		return "+1"
	}
	return "-1"
}

// Sample 一个实例点，x为特征向量，y为正负类标记
type Sample struct {
	x []float64
	y Label
}

func (s *Sample) GetX() []float64 {
	return append([]float64(nil), s.x...)
}

func (s *Sample) GetY() Label {
	return s.y
}

// SampleSet 训练集，下标顺序即扫描顺序
type SampleSet struct {
	data []Sample
	dim  int
}

// NewSampleSet 由行数据构造训练集，每行前d项为特征，最后一项为标记 +1/-1
// eg. {4,3,1} 为x=(4,3)的正实例点
func NewSampleSet(rows [][]float64) (*SampleSet, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidDataset, "empty dataset")
	}
	width := len(rows[0])
	if width < 2 {
		return nil, errors.Wrapf(ErrInvalidDataset, "row 0 has %d values, need features and a label", width)
	}

	ss := &SampleSet{data: make([]Sample, len(rows)), dim: width - 1}
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidDataset, "row %d has %d values, expect %d", i, len(row), width)
		}
		var y Label
		switch row[width-1] {
		case 1:
			y = PN
		case -1:
			y = NN
		default:
			return nil, errors.Wrapf(ErrInvalidDataset, "row %d label %v not in {+1,-1}", i, row[width-1])
		}
		x := make([]float64, width-1)
		for k, v := range row[:width-1] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidDataset, "row %d feature %d is %v", i, k, v)
			}
			x[k] = v
		}
		ss.data[i] = Sample{x: x, y: y}
	}
	return ss, nil
}

func (ss *SampleSet) Len() int {
	return len(ss.data)
}

// Dim 特征维度d
func (ss *SampleSet) Dim() int {
	return ss.dim
}

func (ss *SampleSet) Sample(i int) Sample {
	return Sample{x: ss.X(i), y: ss.data[i].y}
}

func (ss *SampleSet) X(i int) []float64 {
	return ss.data[i].GetX()
}

func (ss *SampleSet) Y(i int) Label {
	return ss.data[i].y
}

// Rows 还原为行数据，最后一项为标记
func (ss *SampleSet) Rows() [][]float64 {
	rows := make([][]float64, len(ss.data))
	for i, s := range ss.data {
		row := make([]float64, 0, ss.dim+1)
		row = append(row, s.x...)
		rows[i] = append(row, float64(s.y))
	}
	return rows
}
