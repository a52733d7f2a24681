package unionfind

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument 元素个数不合法(必须为正数)
	ErrInvalidArgument = errors.New("unionfind: invalid argument")
	// ErrOutOfRange 元素编号不在 [0, n) 范围内
	ErrOutOfRange = errors.New("unionfind: element out of range")
)

// UnionFind 是并查集结构，支持路径压缩和按大小合并
// 只能合并不能拆分，元素范围固定为 [0, n)
type UnionFind struct {
	parent []int
	size   []int // 只有根节点上的值有意义
	count  int   // 剩余的集合个数
}

// NewUnionFind 初始化并查集，每个元素单独成为一个集合
func NewUnionFind(n int) (*UnionFind, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: 元素个数 %d 必须大于 0", ErrInvalidArgument, n)
	}
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size, count: n}, nil
}

// 校验元素编号
func (uf *UnionFind) validate(x int) error {
	if x < 0 || x >= len(uf.parent) {
		return fmt.Errorf("%w: %d 不在 [0, %d) 内", ErrOutOfRange, x, len(uf.parent))
	}
	return nil
}

// root 查找根节点，两遍遍历：先找到根，再把路径上的节点直接挂到根上
// 调用前必须已经校验过 x
func (uf *UnionFind) root(x int) int {
	r := x
	for uf.parent[r] != r {
		r = uf.parent[r]
	}
	for x != r {
		next := uf.parent[x]
		uf.parent[x] = r
		x = next
	}
	return r
}

// Find 查找元素所在集合的根节点（带路径压缩）
func (uf *UnionFind) Find(x int) (int, error) {
	if err := uf.validate(x); err != nil {
		return 0, err
	}
	return uf.root(x), nil
}

// Union 合并两个集合（按大小优化，小树挂到大树下面）
// 返回 false 表示两者本来就在同一个集合中
func (uf *UnionFind) Union(x, y int) (bool, error) {
	// 两个都校验通过后才允许修改
	if err := uf.validate(x); err != nil {
		return false, err
	}
	if err := uf.validate(y); err != nil {
		return false, err
	}

	rootX := uf.root(x)
	rootY := uf.root(y)
	if rootX == rootY {
		return false, nil
	}

	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	uf.count--
	return true, nil
}

// Connected 判断两个元素是否在同一个集合
func (uf *UnionFind) Connected(x, y int) (bool, error) {
	if err := uf.validate(x); err != nil {
		return false, err
	}
	if err := uf.validate(y); err != nil {
		return false, err
	}
	return uf.root(x) == uf.root(y), nil
}

// Size 返回某个集合的大小
func (uf *UnionFind) Size(x int) (int, error) {
	if err := uf.validate(x); err != nil {
		return 0, err
	}
	return uf.size[uf.root(x)], nil
}

// Count 返回剩余的集合个数
func (uf *UnionFind) Count() int {
	return uf.count
}

// Len 返回元素总数
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}
