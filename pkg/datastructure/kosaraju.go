package datastructure

import "github.com/lintang-b-s/routefinder/pkg/util"

// Components. strongly connected components of a graph, ids are numbered in discovery order of the second pass.
type Components struct {
	ids   []Index
	sizes []int
}

func (c *Components) Of(v Index) Index {
	return c.ids[v]
}

// Size. number of vertices in the component of v
func (c *Components) Size(v Index) int {
	return c.sizes[c.ids[v]]
}

func (c *Components) Count() int {
	return len(c.sizes)
}

func (c *Components) Largest() int {
	largest := 0
	for _, size := range c.sizes {
		largest = max(largest, size)
	}
	return largest
}

// StronglyConnectedComponents. computed once per graph with kosaraju's algorithm, later calls return the cached result.
func (g *Graph) StronglyConnectedComponents() *Components {
	g.sccOnce.Do(func() {
		g.scc = g.runKosaraju()
	})
	return g.scc
}

type dfsFrame struct {
	v    Index
	next Index
}

func (g *Graph) runKosaraju() *Components {
	n := Index(len(g.vertices))

	// first pass: vertices in order of dfs finish time
	order := make([]Index, 0, n)
	visited := make([]bool, n)
	stack := make([]dfsFrame, 0, 64)
	for root := Index(0); root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack = append(stack, dfsFrame{v: root, next: g.firstOut[root]})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == g.firstOut[top.v+1] {
				order = append(order, top.v)
				stack = stack[:len(stack)-1]
				continue
			}
			head := g.edges[g.outEdges[top.next]].head
			top.next++
			if !visited[head] {
				visited[head] = true
				stack = append(stack, dfsFrame{v: head, next: g.firstOut[head]})
			}
		}
	}
	order = util.ReverseG(order)

	// second pass: dfs on the reversed graph in decreasing finish time
	firstIn := make([]Index, n+1)
	for i := range g.edges {
		firstIn[g.edges[i].head+1]++
	}
	for v := Index(0); v < n; v++ {
		firstIn[v+1] += firstIn[v]
	}
	inTails := make([]Index, len(g.edges))
	pos := make([]Index, n)
	copy(pos, firstIn[:n])
	for i := range g.edges {
		head := g.edges[i].head
		inTails[pos[head]] = g.edges[i].tail
		pos[head]++
	}

	ids := make([]Index, n)
	for i := range ids {
		ids[i] = INVALID_VERTEX_ID
	}
	sizes := make([]int, 0)
	vStack := make([]Index, 0, 64)
	for _, root := range order {
		if ids[root] != INVALID_VERTEX_ID {
			continue
		}
		id := Index(len(sizes))
		size := 0
		ids[root] = id
		vStack = append(vStack, root)
		for len(vStack) > 0 {
			v := vStack[len(vStack)-1]
			vStack = vStack[:len(vStack)-1]
			size++
			for i := firstIn[v]; i < firstIn[v+1]; i++ {
				if u := inTails[i]; ids[u] == INVALID_VERTEX_ID {
					ids[u] = id
					vStack = append(vStack, u)
				}
			}
		}
		sizes = append(sizes, size)
	}

	return &Components{ids: ids, sizes: sizes}
}
