package astar

import (
	"container/heap"

	"github.com/snakeplanner/snake-planner/pkg/grid"
)

// See: https://pkg.go.dev/container/heap priority queue example.

// Item represents an entity in the queue.
type Item struct {
	node     nodeID
	key      string
	priority float64
	index    int
}

// PriorityQueue is a min priority queue.
type PriorityQueue []*Item

// Len returns the length of the queue.
func (queue PriorityQueue) Len() int {
	return len(queue)
}

// Less determines an item with the lowest priority.
func (queue PriorityQueue) Less(i, j int) bool {
	return queue[i].priority < queue[j].priority
}

// Swap swaps to items in the queue.
func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].index = i
	queue[j].index = j
}

// Push adds an item to the queue.
func (queue *PriorityQueue) Push(x interface{}) {
	n := len(*queue)
	item := x.(*Item)
	item.index = n
	*queue = append(*queue, item)
}

// Pop returns item with the lowest priority from the queue.
func (queue *PriorityQueue) Pop() interface{} {
	old := *queue
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*queue = old[0 : n-1]
	return item
}

// frontier combines the queue with a lookup table from state key to queue item.
type frontier struct {
	arena    *arena
	goal     grid.Cell
	tieBreak float64
	queue    PriorityQueue
	handles  map[string]*Item
}

// newFrontier initializes an empty frontier for the nodes in the given arena.
func newFrontier(a *arena, goal grid.Cell, tieBreak float64) *frontier {
	f := &frontier{
		arena:    a,
		goal:     goal,
		tieBreak: tieBreak,
		queue:    make(PriorityQueue, 0),
		handles:  make(map[string]*Item),
	}
	heap.Init(&f.queue)
	return f
}

// priority is g plus the slightly inflated Manhattan distance to the goal. The
// inflation breaks ties in favour of nodes closer to the goal, so that only
// one of many equally long paths gets explored.
func (f *frontier) priority(n *node) float64 {
	h := float64(grid.Manhattan(n.state.Head(), f.goal))
	return float64(n.g) + f.tieBreak*h
}

// insert adds a node; its state must not be in the frontier yet.
func (f *frontier) insert(id nodeID) {
	n := f.arena.get(id)
	item := &Item{node: id, key: n.key, priority: f.priority(n)}
	heap.Push(&f.queue, item)
	f.handles[n.key] = item
}

// contains checks if a state with the given key waits in the frontier.
func (f *frontier) contains(key string) bool {
	_, ok := f.handles[key]
	return ok
}

// decreaseIfBetter replaces the frontier entry for the node's state if the
// node offers a strictly lower priority. Only then the node is moved into the
// arena. Returns whether it did.
func (f *frontier) decreaseIfBetter(n node) bool {
	item, ok := f.handles[n.key]
	if !ok {
		return false
	}
	p := f.priority(&n)
	if p >= item.priority {
		return false
	}
	item.node = f.arena.add(n)
	item.priority = p
	heap.Fix(&f.queue, item.index)
	return true
}

// popMin removes the node with the lowest priority.
func (f *frontier) popMin() nodeID {
	item := heap.Pop(&f.queue).(*Item)
	delete(f.handles, item.key)
	return item.node
}

func (f *frontier) isEmpty() bool {
	return f.queue.Len() == 0
}

// Len returns the number of waiting nodes.
func (f *frontier) Len() int {
	return f.queue.Len()
}
