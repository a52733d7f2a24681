package testutils

import (
	"math/rand/v2"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Site 是 1 开始计数的站点坐标
type Site struct {
	Row int
	Col int
}

// 测试用的网格接口，避免 internal 反向依赖 pkg
type OpenGrid interface {
	Open(row, col int) error
}

// OpenAll 按顺序打开一组站点，遇到错误立刻返回
func OpenAll(g OpenGrid, sites ...Site) error {
	for _, s := range sites {
		if err := g.Open(s.Row, s.Col); err != nil {
			return err
		}
	}
	return nil
}

// Shuffled 返回所有站点的一个随机排列，种子相同结果相同
func Shuffled(n int, seed uint64) []Site {
	sites := make([]Site, 0, n*n)
	for row := 1; row <= n; row++ {
		for col := 1; col <= n; col++ {
			sites = append(sites, Site{row, col})
		}
	}
	r := rand.New(rand.NewPCG(seed, 0))
	r.Shuffle(len(sites), func(i, j int) {
		sites[i], sites[j] = sites[j], sites[i]
	})
	return sites
}

// FloodFull 暴力求出所有满站点：从第一行的打开站点出发做深度优先搜索
// open 和返回值都是 0 开始计数的 n×n 矩阵
func FloodFull(open [][]bool) [][]bool {
	n := len(open)
	full := make([][]bool, n)
	for i := range full {
		full[i] = make([]bool, n)
	}

	stack := arraystack.New()
	for col := 0; col < n; col++ {
		if open[0][col] {
			full[0][col] = true
			stack.Push([2]int{0, col})
		}
	}

	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for !stack.Empty() {
		v, _ := stack.Pop()
		cur := v.([2]int)
		for _, d := range dirs {
			r, c := cur[0]+d[0], cur[1]+d[1]
			if r < 0 || r >= n || c < 0 || c >= n {
				continue
			}
			if open[r][c] && !full[r][c] {
				full[r][c] = true
				stack.Push([2]int{r, c})
			}
		}
	}
	return full
}

// Percolates 最后一行存在满站点即渗透
func Percolates(open [][]bool) bool {
	n := len(open)
	if n == 0 {
		return false
	}
	full := FloodFull(open)
	for col := 0; col < n; col++ {
		if full[n-1][col] {
			return true
		}
	}
	return false
}
