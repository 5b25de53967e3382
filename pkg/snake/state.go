// Package snake models a snake body as an immutable search state.
//
// All operations that depend on the grid size or the goal take a Context,
// which is built once per search and never mutated.
package snake

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/snakeplanner/snake-planner/pkg/grid"
)

var (
	// ErrEmptyBody is returned for a snake without cells.
	ErrEmptyBody = errors.New("snake shouldn't be empty")
	// ErrDuplicateCell is returned when a body overlaps itself.
	ErrDuplicateCell = errors.New("snake body overlaps itself")
	// ErrOutOfBounds is returned for cells outside of the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrSelfCollision is returned when a move would hit the body.
	ErrSelfCollision = errors.New("move hits the snake's body")
	// ErrInvalidGrid is returned for grids smaller than 1x1.
	ErrInvalidGrid = errors.New("invalid grid size")
)

// Context is shared by all states of a single search.
type Context struct {
	Width  int
	Height int
	Goal   grid.Cell
	// TailVacates allows moving onto the current tail cell on moves that do not grow the snake.
	TailVacates bool
}

// ContextOption tweaks a Context on construction.
type ContextOption func(*Context)

// WithTailVacates enables the less restrictive tail rule.
func WithTailVacates() ContextOption {
	return func(c *Context) {
		c.TailVacates = true
	}
}

// NewContext validates the grid and goal.
func NewContext(width, height int, goal grid.Cell, opts ...ContextOption) (Context, error) {
	if width < 1 || height < 1 {
		return Context{}, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, width, height)
	}
	if !grid.InBounds(goal, width, height) {
		return Context{}, fmt.Errorf("goal %v: %w of %dx%d", goal, ErrOutOfBounds, width, height)
	}
	ctx := Context{Width: width, Height: height, Goal: goal}
	for _, opt := range opts {
		opt(&ctx)
	}
	return ctx, nil
}

// State is a snapshot of the snake body, head first.
type State struct {
	body []grid.Cell
}

// NewState copies cells into a new state.
func NewState(cells []grid.Cell) (State, error) {
	if len(cells) == 0 {
		return State{}, ErrEmptyBody
	}
	seen := make(map[grid.Cell]struct{}, len(cells))
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			return State{}, fmt.Errorf("%w at %v", ErrDuplicateCell, c)
		}
		seen[c] = struct{}{}
	}
	body := make([]grid.Cell, len(cells))
	copy(body, cells)
	return State{body: body}, nil
}

// Validate checks that every cell of the body is on the context's grid.
func (s State) Validate(ctx Context) error {
	if len(s.body) == 0 {
		return ErrEmptyBody
	}
	for _, c := range s.body {
		if !grid.InBounds(c, ctx.Width, ctx.Height) {
			return fmt.Errorf("body cell %v: %w of %dx%d", c, ErrOutOfBounds, ctx.Width, ctx.Height)
		}
	}
	return nil
}

// Head returns the first cell.
func (s State) Head() grid.Cell {
	return s.body[0]
}

// Tail returns the last cell.
func (s State) Tail() grid.Cell {
	return s.body[len(s.body)-1]
}

// Len returns the number of cells.
func (s State) Len() int {
	return len(s.body)
}

// Cells returns a copy of the body.
func (s State) Cells() []grid.Cell {
	out := make([]grid.Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Occupies tells whether c is part of the body.
func (s State) Occupies(c grid.Cell) bool {
	for _, b := range s.body {
		if b == c {
			return true
		}
	}
	return false
}

// Hash is an order sensitive rolling hash over the body.
func (s State) Hash() uint64 {
	h := uint64(19)
	for _, c := range s.body {
		h = h*31 + (uint64(uint32(c.Row))<<32 | uint64(uint32(c.Col)))
	}
	return h
}

// Key encodes the body into a string usable as map key. Two states are
// equal iff their keys are: same cells in the same order.
func (s State) Key() string {
	buf := make([]byte, 0, len(s.body)*4)
	for _, c := range s.body {
		buf = binary.AppendVarint(buf, int64(c.Row))
		buf = binary.AppendVarint(buf, int64(c.Col))
	}
	return string(buf)
}

func (s State) String() string {
	parts := make([]string, len(s.body))
	for i, c := range s.body {
		parts[i] = fmt.Sprintf("%d,%d", c.Row, c.Col)
	}
	return strings.Join(parts, " <- ")
}

// IsGoal tells whether the head sits on the goal.
func IsGoal(s State, ctx Context) bool {
	return s.Head() == ctx.Goal
}

// blocked returns the reason why next cannot become the new head, or nil.
func blocked(s State, next grid.Cell, ctx Context) error {
	if !grid.InBounds(next, ctx.Width, ctx.Height) {
		return ErrOutOfBounds
	}
	if !s.Occupies(next) {
		return nil
	}
	// the tail moves away on non-growth moves. For a two cell snake the tail
	// is also the neck, and turning back onto it is never allowed.
	if ctx.TailVacates && next == s.Tail() && s.Len() > 2 && next != ctx.Goal {
		return nil
	}
	return ErrSelfCollision
}

// LegalActions returns the moves that keep the snake on the grid and off its body.
func LegalActions(s State, ctx Context) []grid.Direction {
	actions := make([]grid.Direction, 0, len(grid.Directions))
	for _, dir := range grid.Directions {
		if blocked(s, grid.Apply(s.Head(), dir), ctx) == nil {
			actions = append(actions, dir)
		}
	}
	return actions
}

// Successor moves the snake one step. The snake grows by one cell when the
// new head lands on the goal; otherwise the tail is dropped.
func Successor(s State, dir grid.Direction, ctx Context) (State, error) {
	next := grid.Apply(s.Head(), dir)
	if err := blocked(s, next, ctx); err != nil {
		return State{}, fmt.Errorf("wrong direction to apply: %v, %w at %v, current head at %v", dir, err, next, s.Head())
	}
	grow := next == ctx.Goal
	n := len(s.body)
	if grow {
		n++
	}
	body := make([]grid.Cell, n)
	body[0] = next
	copy(body[1:], s.body)
	return State{body: body}, nil
}
