// Package percolation 用并查集模拟 n×n 网格上的渗透系统
//
// 网格坐标从 1 开始，(1,1) 为左上角。每个站点初始关闭，打开后与相邻的
// 打开站点连通。第一行的打开站点与虚拟顶部连通，最后一行的打开站点与
// 虚拟底部连通，只要虚拟顶部和虚拟底部连通，系统就渗透了。
package percolation

import (
	"errors"
	"fmt"
	"math"

	"percolation/pkg/unionfind"
)

var (
	// ErrInvalidArgument 网格大小不合法
	ErrInvalidArgument = errors.New("percolation: invalid argument")
	// ErrOutOfRange 行或列不在 [1, n] 内
	ErrOutOfRange = errors.New("percolation: site out of range")
)

// 虚拟顶部的元素编号固定为 0
const topNode = 0

// Grid 是 n×n 的渗透网格
//
// 持有两个独立的并查集：
//   - perc 包含虚拟顶部和虚拟底部，只用来回答 Percolates
//   - full 只包含虚拟顶部，只用来回答 IsFull
//
// 如果只用一个并查集，渗透之后底部行所有打开站点都会经由虚拟底部
// 与顶部连通，IsFull 会出现误报(回流问题)。
type Grid struct {
	n          int
	open       []bool // 行优先，下标为 (row-1)*n + (col-1)
	openSites  int
	bottomNode int
	perc       *unionfind.UnionFind
	full       *unionfind.UnionFind
}

// New 创建一个全部关闭的 n×n 网格
func New(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: 网格大小 %d 必须大于 0", ErrInvalidArgument, n)
	}
	// n²+2 个元素必须能用 int 表示
	if n > (math.MaxInt-2)/n {
		return nil, fmt.Errorf("%w: 网格大小 %d 太大，n*n 溢出", ErrInvalidArgument, n)
	}

	sites := n * n
	perc, err := unionfind.NewUnionFind(sites + 2)
	if err != nil {
		return nil, err
	}
	full, err := unionfind.NewUnionFind(sites + 1)
	if err != nil {
		return nil, err
	}

	return &Grid{
		n:          n,
		open:       make([]bool, sites),
		bottomNode: sites + 1,
		perc:       perc,
		full:       full,
	}, nil
}

// Size 返回网格的边长 n
func (g *Grid) Size() int {
	return g.n
}

func (g *Grid) validate(row, col int) error {
	if row < 1 || row > g.n || col < 1 || col > g.n {
		return fmt.Errorf("%w: (%d, %d) 不在 [1, %d] 内", ErrOutOfRange, row, col, g.n)
	}
	return nil
}

// 站点在并查集中的编号，1..n²
func (g *Grid) id(row, col int) int {
	return (row-1)*g.n + col
}

// 调用前必须已经校验过坐标
func (g *Grid) isOpen(row, col int) bool {
	return g.open[g.id(row, col)-1]
}

// connect 在两个并查集中同时合并
func (g *Grid) connect(a, b int) error {
	if _, err := g.perc.Union(a, b); err != nil {
		return fmt.Errorf("percolation: 连接 %d 和 %d 失败: %w", a, b, err)
	}
	if _, err := g.full.Union(a, b); err != nil {
		return fmt.Errorf("percolation: 连接 %d 和 %d 失败: %w", a, b, err)
	}
	return nil
}

// Open 打开站点 (row, col)，已经打开的站点重复打开不做任何事
func (g *Grid) Open(row, col int) error {
	if err := g.validate(row, col); err != nil {
		return err
	}
	if g.isOpen(row, col) {
		return nil
	}

	node := g.id(row, col)
	g.open[node-1] = true
	g.openSites++

	// 上下左右四个方向，越界或者关闭的邻居跳过
	if row > 1 && g.isOpen(row-1, col) {
		if err := g.connect(node, node-g.n); err != nil {
			return err
		}
	}
	if row < g.n && g.isOpen(row+1, col) {
		if err := g.connect(node, node+g.n); err != nil {
			return err
		}
	}
	if col > 1 && g.isOpen(row, col-1) {
		if err := g.connect(node, node-1); err != nil {
			return err
		}
	}
	if col < g.n && g.isOpen(row, col+1) {
		if err := g.connect(node, node+1); err != nil {
			return err
		}
	}

	if row == 1 {
		if err := g.connect(node, topNode); err != nil {
			return err
		}
	}
	// 虚拟底部只存在于 perc 中，full 里面绝对不能连
	if row == g.n {
		if _, err := g.perc.Union(node, g.bottomNode); err != nil {
			return fmt.Errorf("percolation: 连接虚拟底部失败: %w", err)
		}
	}
	return nil
}

// IsOpen 判断站点是否打开
func (g *Grid) IsOpen(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}
	return g.isOpen(row, col), nil
}

// IsFull 判断站点是否能通过打开的站点连到顶部
func (g *Grid) IsFull(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}
	if !g.isOpen(row, col) {
		return false, nil
	}
	ok, err := g.full.Connected(g.id(row, col), topNode)
	if err != nil {
		return false, fmt.Errorf("percolation: 查询 (%d, %d) 失败: %w", row, col, err)
	}
	return ok, nil
}

// NumberOfOpenSites 返回已经打开的站点个数
func (g *Grid) NumberOfOpenSites() int {
	return g.openSites
}

// Percolates 判断系统是否渗透
func (g *Grid) Percolates() bool {
	// 两个哨兵编号在构造时就确定在范围内，出错说明内部状态已经坏了
	ok, err := g.perc.Connected(topNode, g.bottomNode)
	if err != nil {
		panic(fmt.Sprintf("percolation: 哨兵查询失败: %v", err))
	}
	return ok
}
