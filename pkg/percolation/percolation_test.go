package percolation_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"percolation/internal/testutils"
	"percolation/pkg/percolation"
)

type site = testutils.Site

func newGrid(t *testing.T, n int) *percolation.Grid {
	t.Helper()
	g, err := percolation.New(n)
	require.NoError(t, err)
	return g
}

func mustFull(t *testing.T, g *percolation.Grid, row, col int) bool {
	t.Helper()
	full, err := g.IsFull(row, col)
	require.NoError(t, err)
	return full
}

func TestNewInvalid(t *testing.T) {
	// 最后几个值的 n*n 会溢出 int
	overflow := int(math.Sqrt(float64(math.MaxInt))) + 1
	for _, n := range []int{0, -1, -7, overflow, math.MaxInt / 2, math.MaxInt} {
		g, err := percolation.New(n)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, percolation.ErrInvalidArgument, "n=%d", n)
	}
}

// 新建的网格：没有打开的站点，n > 1 时不渗透
func TestFreshGrid(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 50} {
		g := newGrid(t, n)
		assert.Equal(t, 0, g.NumberOfOpenSites())
		assert.Equal(t, n, g.Size())
		assert.False(t, g.Percolates(), "n=%d", n)

		for row := 1; row <= n; row++ {
			for col := 1; col <= n; col++ {
				open, err := g.IsOpen(row, col)
				require.NoError(t, err)
				assert.False(t, open)
				assert.False(t, mustFull(t, g, row, col))
			}
		}
	}
}

func TestOpenIdempotent(t *testing.T) {
	g := newGrid(t, 4)

	require.NoError(t, g.Open(2, 3))
	require.NoError(t, g.Open(2, 3))

	assert.Equal(t, 1, g.NumberOfOpenSites())
	open, _ := g.IsOpen(2, 3)
	assert.True(t, open)
	assert.False(t, mustFull(t, g, 2, 3))
}

func TestSingleSite(t *testing.T) {
	g := newGrid(t, 1)
	assert.False(t, g.Percolates())

	require.NoError(t, g.Open(1, 1))
	assert.True(t, g.Percolates())
	assert.True(t, mustFull(t, g, 1, 1))
	assert.Equal(t, 1, g.NumberOfOpenSites())
}

// 左边一列打通
func TestLeftColumnPercolates(t *testing.T) {
	g := newGrid(t, 3)

	require.NoError(t, g.Open(1, 1))
	require.NoError(t, g.Open(2, 1))
	assert.False(t, g.Percolates())

	require.NoError(t, g.Open(3, 1))
	assert.True(t, g.Percolates())
	assert.False(t, mustFull(t, g, 1, 3))
	assert.True(t, mustFull(t, g, 3, 1))
	assert.Equal(t, 3, g.NumberOfOpenSites())
}

// 回流回归测试：(3,3) 只和底部相连，不能显示为满
func TestNoBackwash(t *testing.T) {
	g := newGrid(t, 3)

	require.NoError(t, testutils.OpenAll(g, site{1, 1}, site{2, 1}, site{3, 3}))
	assert.False(t, g.Percolates())
	assert.False(t, mustFull(t, g, 3, 3))

	// 左边一列打通之后，(3,3) 和 (3,1) 在虚拟底部那边是同一个集合
	require.NoError(t, g.Open(3, 1))
	assert.True(t, g.Percolates())
	assert.True(t, mustFull(t, g, 3, 1))
	assert.False(t, mustFull(t, g, 3, 3), "bottom-row backwash")

	// 真正连上之后才是满的
	require.NoError(t, g.Open(3, 2))
	assert.True(t, mustFull(t, g, 3, 3))
}

func TestOutOfRange(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		g := newGrid(t, n)

		tests := []struct {
			name     string
			row, col int
		}{
			{"row zero", 0, 1},
			{"row past end", n + 1, 1},
			{"col zero", 1, 0},
			{"col past end", 1, n + 1},
			{"negative", -1, -1},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.ErrorIs(t, g.Open(tt.row, tt.col), percolation.ErrOutOfRange)

				_, err := g.IsOpen(tt.row, tt.col)
				assert.ErrorIs(t, err, percolation.ErrOutOfRange)

				_, err = g.IsFull(tt.row, tt.col)
				assert.ErrorIs(t, err, percolation.ErrOutOfRange)
			})
		}

		// 失败的 Open 不能改动状态
		assert.Equal(t, 0, g.NumberOfOpenSites())
		assert.False(t, g.Percolates())
	}
}

// 随机打开所有站点，每一步都和暴力搜索的结果对比
func TestMatchesFloodFill(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		for seed := uint64(1); seed <= 5; seed++ {
			g := newGrid(t, n)
			open := make([][]bool, n)
			for i := range open {
				open[i] = make([]bool, n)
			}

			prevCount := 0
			for _, s := range testutils.Shuffled(n, seed) {
				require.NoError(t, g.Open(s.Row, s.Col))
				open[s.Row-1][s.Col-1] = true

				// 打开的个数单调不减
				count := g.NumberOfOpenSites()
				require.GreaterOrEqual(t, count, prevCount)
				prevCount = count

				want := testutils.FloodFull(open)
				got := make([][]bool, n)
				for row := 1; row <= n; row++ {
					got[row-1] = make([]bool, n)
					for col := 1; col <= n; col++ {
						full := mustFull(t, g, row, col)
						got[row-1][col-1] = full
						if full {
							isOpen, _ := g.IsOpen(row, col)
							require.True(t, isOpen, "full site (%d, %d) must be open", row, col)
						}
					}
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("n=%d seed=%d after open(%d, %d) mismatch (-want +got):\n%s",
						n, seed, s.Row, s.Col, diff)
				}
				require.Equal(t, testutils.Percolates(open), g.Percolates())
			}
			assert.Equal(t, n*n, g.NumberOfOpenSites())
			assert.True(t, g.Percolates())
		}
	}
}
