package automaton

import (
	"fmt"
	"sort"

	"github.com/vk/reactsynth/internal/ltl"
)

type layeredState struct {
	node  int
	layer int
}

// degeneralize turns the tableau (one acceptance set per until) into a
// graph with a single acceptance set. Tableau id 0 is the pseudo-initial
// node that precedes the first instant.
func degeneralize(nodes []*tableauNode, us []*ltl.Formula, limit int) (*Graph, error) {
	byID := make(map[int]*tableauNode, len(nodes))
	succ := make(map[int][]int)
	for _, n := range nodes {
		byID[n.id] = n
		for in := range n.incoming {
			succ[in] = append(succ[in], n.id)
		}
	}
	for id := range succ {
		sort.Ints(succ[id])
	}

	k := len(us)
	inSet := func(set, id int) bool {
		if id == 0 {
			return false
		}
		old := byID[id].old
		return !old.has(us[set]) || old.has(us[set].Right)
	}
	accepting := func(s layeredState) bool {
		if s.node == 0 {
			return false
		}
		if k == 0 {
			return true
		}
		return s.layer == 0 && inSet(0, s.node)
	}

	g := &Graph{}
	ids := make(map[layeredState]int)
	var queue []layeredState
	visit := func(s layeredState) (int, error) {
		if id, ok := ids[s]; ok {
			return id, nil
		}
		if limit > 0 && len(g.Nodes) >= limit {
			return 0, fmt.Errorf("automaton: degeneralized graph exceeds %d states", limit)
		}
		id := len(g.Nodes)
		ids[s] = id
		g.Nodes = append(g.Nodes, Node{ID: id, Accepting: accepting(s)})
		queue = append(queue, s)
		return id, nil
	}

	if _, err := visit(layeredState{}); err != nil {
		return nil, err
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		layer := s.layer
		if k > 0 && inSet(s.layer, s.node) {
			layer = (s.layer + 1) % k
		}
		for _, q := range succ[s.node] {
			dest, err := visit(layeredState{node: q, layer: layer})
			if err != nil {
				return nil, err
			}
			g.Edges = append(g.Edges, Edge{Source: ids[s], Dest: dest, Guard: byID[q].guard()})
		}
	}
	return g, nil
}

// prune keeps the initial node plus the nodes that are reachable from it
// and can still reach an accepting cycle. Ids are reassigned breadth first
// so the initial node is always 0.
func prune(g *Graph) *Graph {
	n := g.Len()
	forward := make([][]int, n)
	backward := make([][]int, n)
	for _, e := range g.Edges {
		forward[e.Source] = append(forward[e.Source], e.Dest)
		backward[e.Dest] = append(backward[e.Dest], e.Source)
	}

	live := make([]bool, n)
	var frontier []int
	for _, node := range g.Nodes {
		if node.Accepting && reaches(forward, node.ID, node.ID) {
			live[node.ID] = true
			frontier = append(frontier, node.ID)
		}
	}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		for _, p := range backward[id] {
			if !live[p] {
				live[p] = true
				frontier = append(frontier, p)
			}
		}
	}

	renumber := map[int]int{g.Init: 0}
	order := []int{g.Init}
	for i := 0; i < len(order); i++ {
		if !live[order[i]] {
			continue
		}
		for _, d := range forward[order[i]] {
			if _, seen := renumber[d]; !seen && live[d] {
				renumber[d] = len(order)
				order = append(order, d)
			}
		}
	}

	out := &Graph{Init: 0, Nodes: make([]Node, len(order))}
	for newID, oldID := range order {
		out.Nodes[newID] = Node{ID: newID, Accepting: g.Nodes[oldID].Accepting && live[oldID]}
	}
	for _, e := range g.Edges {
		src, okSrc := renumber[e.Source]
		dst, okDst := renumber[e.Dest]
		if okSrc && okDst && live[e.Source] && live[e.Dest] {
			out.Edges = append(out.Edges, Edge{Source: src, Dest: dst, Guard: e.Guard})
		}
	}
	sort.SliceStable(out.Edges, func(i, j int) bool { return out.Edges[i].Source < out.Edges[j].Source })
	return out
}

// reaches reports whether to is reachable from the successors of from.
func reaches(adj [][]int, from, to int) bool {
	seen := make([]bool, len(adj))
	stack := append([]int(nil), adj[from]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, adj[id]...)
	}
	return false
}
