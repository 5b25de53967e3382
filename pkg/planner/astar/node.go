package astar

import (
	"golang.org/x/exp/slices"

	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/snake"
)

// nodeID refers to a node in the arena of one search.
type nodeID int32

// noParent marks the root node.
const noParent nodeID = -1

// node is a state plus the bookkeeping needed to trace back the path to it.
type node struct {
	state  snake.State
	key    string
	parent nodeID
	action grid.Direction
	g      int
}

// arena owns all nodes created during a single search.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{nodes: make([]node, 0, 64)}
}

// root adds the start node; its action is never read.
func (a *arena) root(state snake.State) nodeID {
	return a.add(node{state: state, key: state.Key(), parent: noParent, action: grid.Left})
}

// child builds the node reached from parent via action without adding it to the arena.
func (a *arena) child(parent nodeID, action grid.Direction, ctx snake.Context) (node, error) {
	p := a.get(parent)
	state, err := snake.Successor(p.state, action, ctx)
	if err != nil {
		return node{}, err
	}
	return node{state: state, key: state.Key(), parent: parent, action: action, g: p.g + 1}, nil
}

func (a *arena) add(n node) nodeID {
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) get(id nodeID) *node {
	return &a.nodes[id]
}

// Len returns the number of nodes held.
func (a *arena) Len() int {
	return len(a.nodes)
}

// resolvePath traces back the actions from the root to the given node.
func (a *arena) resolvePath(id nodeID) []grid.Direction {
	actions := make([]grid.Direction, 0, a.get(id).g)
	for current := id; a.get(current).parent != noParent; current = a.get(current).parent {
		actions = append(actions, a.get(current).action)
	}
	slices.Reverse(actions)
	return actions
}
