// Package percstats 通过蒙特卡洛模拟估计渗透阈值
//
// 每次试验新建一个网格，随机打开关闭的站点直到系统渗透，
// 此时打开站点所占的比例就是本次试验得到的阈值。
package percstats

import (
	"errors"
	"fmt"
	"time"

	"percolation/pkg/logutil"
	"percolation/pkg/percolation"
	"percolation/pkg/toolutil/numutil"
)

// ErrInvalidArgument 网格大小或试验次数不合法
var ErrInvalidArgument = errors.New("percstats: invalid argument")

// Trial 单次试验的结果
type Trial struct {
	OpenSites int
	Threshold float64
}

// RunTrial 在 n×n 网格上做一次试验
func RunTrial(n int, src RandomSource) (Trial, error) {
	grid, err := percolation.New(n)
	if err != nil {
		return Trial{}, err
	}

	for !grid.Percolates() {
		row := src.Uniform(1, n)
		col := src.Uniform(1, n)

		open, err := grid.IsOpen(row, col)
		if err != nil {
			return Trial{}, err
		}
		if open {
			continue
		}
		if err := grid.Open(row, col); err != nil {
			return Trial{}, err
		}
	}

	openSites := grid.NumberOfOpenSites()
	return Trial{
		OpenSites: openSites,
		Threshold: float64(openSites) / float64(n*n),
	}, nil
}

type options struct {
	src  RandomSource
	seed int64
}

// Option 配置 Stats
type Option func(*options)

// WithSeed 使用指定种子的 RNG
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.src = NewRNG(seed)
	}
}

// WithSource 使用外部提供的随机源，此时 Seed() 返回 0
func WithSource(src RandomSource) Option {
	return func(o *options) {
		o.seed = 0
		o.src = src
	}
}

// Stats 保存 trials 次独立试验的阈值及其统计量
type Stats struct {
	n          int
	seed       int64
	thresholds []float64
	mean       float64
	stddev     float64
	lo, hi     float64
}

// New 执行 trials 次试验，构造完成后所有统计量都已经算好
func New(n, trials int, opts ...Option) (*Stats, error) {
	if n <= 0 || trials <= 0 {
		return nil, fmt.Errorf("%w: n=%d trials=%d 都必须大于 0", ErrInvalidArgument, n, trials)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		seed := time.Now().UnixNano()
		o.seed = seed
		o.src = NewRNG(seed)
	}

	s := &Stats{
		n:          n,
		seed:       o.seed,
		thresholds: make([]float64, trials),
	}
	for i := range s.thresholds {
		trial, err := RunTrial(n, o.src)
		if err != nil {
			return nil, fmt.Errorf("percstats: 第 %d 次试验失败: %w", i+1, err)
		}
		s.thresholds[i] = trial.Threshold
		logutil.Debug("trial %d/%d: open=%d threshold=%.6f", i+1, trials, trial.OpenSites, trial.Threshold)
	}

	s.mean = numutil.Mean(s.thresholds)
	s.stddev = numutil.StdDev(s.thresholds)
	s.lo, s.hi = numutil.ConfidenceInterval(s.mean, s.stddev, trials, numutil.Z95)
	logutil.Info("n=%d trials=%d mean=%.6f stddev=%.6f", n, trials, s.mean, s.stddev)
	return s, nil
}

// Mean 阈值的样本均值
func (s *Stats) Mean() float64 { return s.mean }

// StdDev 阈值的样本标准差，只有一次试验时为 0
func (s *Stats) StdDev() float64 { return s.stddev }

// ConfidenceLo 95% 置信区间下界
func (s *Stats) ConfidenceLo() float64 { return s.lo }

// ConfidenceHi 95% 置信区间上界
func (s *Stats) ConfidenceHi() float64 { return s.hi }

// Thresholds 返回每次试验阈值的拷贝
func (s *Stats) Thresholds() []float64 {
	out := make([]float64, len(s.thresholds))
	copy(out, s.thresholds)
	return out
}

func (s *Stats) Trials() int   { return len(s.thresholds) }
func (s *Stats) GridSize() int { return s.n }
func (s *Stats) Seed() int64   { return s.seed }
