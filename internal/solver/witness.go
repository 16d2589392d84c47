package solver

import (
	"context"
	"sort"

	"github.com/vk/reactsynth/internal/reduce"
)

// CounterWitness summarises a plant counter strategy on a reduced safety
// game. swapped must come from SolveSafety on g.Swapped(). The result is a
// small set of input valuations such that every environment class the
// plant can reach while playing safe has at least one of them among its
// safe moves. It also returns the number of decoded codes that fell
// outside the class range.
func CounterWitness(ctx context.Context, g *Game, swapped *SafetyResult, rg *reduce.Game) ([]int, int, error) {
	s := g.Space.S
	safe := s.Diff(g.Plant, swapped.Blocked)
	reach, err := g.Reachable(ctx, s.Or(safe, g.Controller))
	if err != nil {
		return nil, 0, err
	}
	pairs, skipped, err := g.Space.Pairs(s.And(safe, reach))
	if err != nil {
		return nil, 0, err
	}

	actions := make(map[int]map[int]struct{})
	for _, p := range pairs {
		src, dst := rg.Classes[p[0]], p[1]
		for v, succ := range src.Successors {
			if succ.ID != dst {
				continue
			}
			if actions[src.ID] == nil {
				actions[src.ID] = make(map[int]struct{})
			}
			actions[src.ID][v] = struct{}{}
		}
	}

	var chosen []int
	picked := make(map[int]bool)
	for len(actions) > 0 {
		best, bestCount := -1, 0
		for v := 0; v < rg.Inputs; v++ {
			if picked[v] {
				continue
			}
			count := 0
			for _, vs := range actions {
				if _, ok := vs[v]; ok {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = v, count
			}
		}
		if best < 0 {
			break
		}
		picked[best] = true
		chosen = append(chosen, best)
		for id, vs := range actions {
			if _, ok := vs[best]; ok {
				delete(actions, id)
			}
		}
	}
	sort.Ints(chosen)
	return chosen, skipped, nil
}
