package datasets

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Textbook 正实例点 x1=(3,3), x2=(4,3)，负实例点 x3=(1,1)
func Textbook() [][]float64 {
	return [][]float64{{3, 3, 1}, {4, 3, 1}, {1, 1, -1}}
}

// Scatter 以x轴左右分开的8个二维实例点
func Scatter() [][]float64 {
	return [][]float64{
		{-0.4, 0.3, 1}, {-0.3, -0.1, 1}, {-0.2, 0.4, 1},
		{-0.1, 0.1, 1}, {0.1, -0.5, -1}, {0.2, -0.9, -1},
		{0.3, 0.2, -1}, {0.4, -0.6, -1},
	}
}

// XOR 线性不可分，感知机不会收敛
func XOR() [][]float64 {
	return [][]float64{{0, 0, -1}, {0, 1, 1}, {1, 0, 1}, {1, 1, -1}}
}

var registry = map[string]func() [][]float64{
	"textbook": Textbook,
	"scatter":  Scatter,
	"xor":      XOR,
}

func Lookup(name string) ([][]float64, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDataset, "%q, available: %s", name, strings.Join(Names(), ","))
	}
	return f(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
