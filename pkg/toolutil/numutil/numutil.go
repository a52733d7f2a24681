package numutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number 可以参与统计计算的数值类型
type Number interface {
	constraints.Integer | constraints.Float
}

// Z95 95% 置信区间对应的正态分布分位数
const Z95 = 1.96

// Mean 样本均值，空切片返回 NaN
func Mean[T Number](data []T) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data))
}

// StdDev 样本标准差（分母 n-1）
// 只有一个样本时没有离散程度可言，按 0 处理；空切片返回 NaN
func StdDev[T Number](data []T) float64 {
	switch len(data) {
	case 0:
		return math.NaN()
	case 1:
		return 0
	}
	mean := Mean(data)
	var sum float64
	for _, v := range data {
		d := float64(v) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)-1))
}

// ConfidenceInterval 返回 mean ± z·stddev/√n
func ConfidenceInterval(mean, stddev float64, n int, z float64) (lo, hi float64) {
	half := z * stddev / math.Sqrt(float64(n))
	return mean - half, mean + half
}
