package percstats

import "math/rand/v2"

// RandomSource 均匀随机整数来源，Uniform 返回闭区间 [lo, hi] 内的整数
type RandomSource interface {
	Uniform(lo, hi int) int
}

// RNG 是 math/rand/v2 的简单封装，种子相同则序列相同
type RNG struct {
	r *rand.Rand
}

// NewRNG 用给定种子创建一个确定性的随机数发生器
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Uniform 返回 [lo, hi] 内的均匀随机整数，要求 lo <= hi
func (r *RNG) Uniform(lo, hi int) int {
	return lo + r.r.IntN(hi-lo+1)
}
