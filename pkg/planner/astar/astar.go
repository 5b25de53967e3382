package astar

import (
	"fmt"
	"time"

	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/planner"
	"github.com/snakeplanner/snake-planner/pkg/snake"

	"k8s.io/klog/v2"
)

// See: [wikipedia](https://en.wikipedia.org/wiki/A*_search_algorithm#Pseudocode)

// options steer a single run of the search.
type options struct {
	budget      time.Duration
	tieBreak    float64
	headPruning bool
	tailVacates bool
	now         func() time.Time
}

// defaultOptions returns the reference settings: 1s budget, 1.001 tie-break and head pruning.
func defaultOptions() options {
	return options{
		budget:      DefaultTimeBudget,
		tieBreak:    DefaultTieBreak,
		headPruning: true,
		now:         time.Now,
	}
}

// solve runs A* from start until the head reaches the context's goal, the
// frontier runs dry or the time budget is used up.
func solve(start snake.State, ctx snake.Context, opts options) (planner.Result, error) {
	if err := start.Validate(ctx); err != nil {
		return planner.Result{}, fmt.Errorf("invalid start state: %w", err)
	}
	began := opts.now()

	nodes := newArena()
	open := newFrontier(nodes, ctx.Goal, opts.tieBreak)
	open.insert(nodes.root(start))

	// explored states & head cells - in order not to repeat ourselves.
	explored := make(map[string]struct{})
	exploredCells := make(map[grid.Cell]struct{})

	outcome := planner.Exhausted
	for !open.isEmpty() {
		current := open.popMin()
		if opts.now().Sub(began) > opts.budget {
			outcome = planner.TimedOut
			break
		}

		state, key := nodes.get(current).state, nodes.get(current).key
		if snake.IsGoal(state, ctx) {
			path := nodes.resolvePath(current)
			elapsed := opts.now().Sub(began)
			klog.V(2).Infof("Found path of length=%d by exploring %d states in %v.", len(path), len(explored), elapsed)
			return planner.Result{
				Path:     path,
				Elapsed:  elapsed,
				Explored: len(explored),
				Outcome:  planner.Succeeded,
			}, nil
		}

		explored[key] = struct{}{}
		exploredCells[state.Head()] = struct{}{}

		for _, action := range snake.LegalActions(state, ctx) {
			child, err := nodes.child(current, action, ctx)
			if err != nil {
				return planner.Result{}, fmt.Errorf("expanding %v: %w", state, err)
			}
			_, closedHead := exploredCells[child.state.Head()]
			_, closed := explored[child.key]
			inFrontier := open.contains(child.key)
			switch {
			case !(opts.headPruning && closedHead) && !closed && !inFrontier:
				open.insert(nodes.add(child))
			case inFrontier:
				open.decreaseIfBetter(child)
			}
		}
	}

	elapsed := opts.now().Sub(began)
	klog.V(4).Infof("Search ended with %d of %d nodes left in the frontier.", open.Len(), nodes.Len())
	klog.Warningf("Could not find path from %v to %v: %s after exploring %d states in %v.",
		start.Head(), ctx.Goal, outcome, len(explored), elapsed)
	return planner.Result{
		Elapsed:  elapsed,
		Explored: len(explored),
		Outcome:  outcome,
	}, nil
}
