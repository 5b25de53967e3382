// Package game simulates the snake game the planner was built for: a board
// with walls, a snake that moves one cell per turn and apples to eat.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/snakeplanner/snake-planner/pkg/grid"
)

// Tile is the content of a single board cell.
type Tile uint8

const (
	Empty Tile = iota
	Wall
	SnakeBody
	SnakeHead
	Apple
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case SnakeBody:
		return "body"
	case SnakeHead:
		return "head"
	case Apple:
		return "apple"
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// MoveResultType tells what happened during a move.
type MoveResultType uint8

const (
	Hit MoveResultType = iota
	Eat
	Move
)

func (m MoveResultType) String() string {
	switch m {
	case Hit:
		return "hit"
	case Eat:
		return "eat"
	case Move:
		return "move"
	}
	return fmt.Sprintf("MoveResultType(%d)", uint8(m))
}

// MoveResult lists the cells whose tile changed during a move.
type MoveResult struct {
	Type    MoveResultType
	Updated []grid.Cell
}

// maxSpawnAttempts is the number of random cells tried before scanning the board.
const maxSpawnAttempts = 200

var (
	// ErrBoardFull is returned when there is no empty tile left for an apple.
	ErrBoardFull = errors.New("no empty tile left")
	// ErrInvalidBoard is returned for boards the snake does not fit on.
	ErrInvalidBoard = errors.New("invalid board")
)

// Board holds the tiles and the snake. Not safe for concurrent use.
type Board struct {
	width       int
	height      int
	tiles       []Tile
	body        []grid.Cell
	dir         grid.Direction
	tailVacates bool
}

// BoardOption tweaks a Board on construction.
type BoardOption func(*Board)

// WithTailVacates lets the head move onto the cell the tail leaves in the same turn.
func WithTailVacates() BoardOption {
	return func(b *Board) {
		b.tailVacates = true
	}
}

// NewBoard creates a width x height board surrounded by a wall of the given
// thickness. The snake starts at head, facing dir, with the rest of its body
// laid out behind it.
func NewBoard(width, height, border int, head grid.Cell, length int, dir grid.Direction, opts ...BoardOption) (*Board, error) {
	if width < 1 || height < 1 || border < 0 || 2*border >= width || 2*border >= height {
		return nil, fmt.Errorf("%w: %dx%d with border %d", ErrInvalidBoard, width, height, border)
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: snake length should be positive", ErrInvalidBoard)
	}
	b := &Board{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
		body:   make([]grid.Cell, 0, length),
		dir:    dir,
	}
	for _, opt := range opts {
		opt(b)
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if row < border || row >= height-border || col < border || col >= width-border {
				b.tiles[b.index(grid.Cell{Row: row, Col: col})] = Wall
			}
		}
	}

	behind := grid.Invert(dir)
	current := head
	for i := 0; i < length; i++ {
		if !b.inBounds(current) || b.Tile(current) != Empty {
			return nil, fmt.Errorf("%w: snake cell %v is not on an empty tile", ErrInvalidBoard, current)
		}
		b.body = append(b.body, current)
		b.set(current, SnakeBody)
		current = grid.Apply(current, behind)
	}
	b.set(head, SnakeHead)
	return b, nil
}

func (b *Board) index(c grid.Cell) int {
	return c.Row*b.width + c.Col
}

func (b *Board) inBounds(c grid.Cell) bool {
	return grid.InBounds(c, b.width, b.height)
}

func (b *Board) set(c grid.Cell, t Tile) {
	b.tiles[b.index(c)] = t
}

// Width returns the number of columns including walls.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows including walls.
func (b *Board) Height() int {
	return b.height
}

// Tile returns the content of a cell; cells off the board read as walls.
func (b *Board) Tile(c grid.Cell) Tile {
	if !b.inBounds(c) {
		return Wall
	}
	return b.tiles[b.index(c)]
}

// Dir returns the direction of the next move.
func (b *Board) Dir() grid.Direction {
	return b.dir
}

// SetDir changes the direction of the next move.
func (b *Board) SetDir(dir grid.Direction) {
	b.dir = dir
}

// Head returns the head cell of the snake.
func (b *Board) Head() grid.Cell {
	return b.body[0]
}

// Len returns the length of the snake.
func (b *Board) Len() int {
	return len(b.body)
}

// Body returns a copy of the snake, head first.
func (b *Board) Body() []grid.Cell {
	out := make([]grid.Cell, len(b.body))
	copy(out, b.body)
	return out
}

// Move advances the snake one cell in its current direction. On a hit
// nothing changes.
func (b *Board) Move() MoveResult {
	oldHead := b.Head()
	newHead := grid.Apply(oldHead, b.dir)
	tail := b.body[len(b.body)-1]
	target := b.Tile(newHead)

	chasingTail := b.tailVacates && newHead == tail && len(b.body) > 2
	if target != Empty && target != Apple && !chasingTail {
		return MoveResult{Type: Hit, Updated: []grid.Cell{}}
	}

	if target == Apple {
		b.body = append(b.body, grid.Cell{})
		copy(b.body[1:], b.body)
		b.body[0] = newHead
		b.set(oldHead, SnakeBody)
		b.set(newHead, SnakeHead)
		return MoveResult{Type: Eat, Updated: []grid.Cell{newHead, oldHead}}
	}

	copy(b.body[1:], b.body[:len(b.body)-1])
	b.body[0] = newHead
	b.set(tail, Empty)
	if len(b.body) > 1 {
		b.set(oldHead, SnakeBody)
	}
	b.set(newHead, SnakeHead)
	return MoveResult{Type: Move, Updated: []grid.Cell{newHead, oldHead, tail}}
}

// SpawnApple places an apple on an empty tile.
func (b *Board) SpawnApple(c grid.Cell) error {
	if !b.inBounds(c) {
		return fmt.Errorf("apple %v: %w", c, ErrInvalidBoard)
	}
	if t := b.Tile(c); t != Empty {
		return fmt.Errorf("cannot place apple on %v: tile is %s", c, t)
	}
	b.set(c, Apple)
	return nil
}

// SpawnAppleInEmptyTile places an apple on a random empty tile. After a
// number of misses the board is scanned from a random offset instead.
func (b *Board) SpawnAppleInEmptyTile(rng *rand.Rand) (grid.Cell, error) {
	for i := 0; i < maxSpawnAttempts; i++ {
		c := grid.Cell{Row: rng.Intn(b.height), Col: rng.Intn(b.width)}
		if b.Tile(c) == Empty {
			b.set(c, Apple)
			return c, nil
		}
	}
	offset := rng.Intn(len(b.tiles))
	for i := range b.tiles {
		idx := (offset + i) % len(b.tiles)
		if b.tiles[idx] == Empty {
			c := grid.Cell{Row: idx / b.width, Col: idx % b.width}
			b.set(c, Apple)
			return c, nil
		}
	}
	return grid.Cell{}, ErrBoardFull
}

// String renders the board top row first.
func (b *Board) String() string {
	symbols := map[Tile]byte{Empty: '.', Wall: '#', SnakeBody: 'o', SnakeHead: '@', Apple: '*'}
	out := make([]byte, 0, (b.width+1)*b.height)
	for row := b.height - 1; row >= 0; row-- {
		for col := 0; col < b.width; col++ {
			out = append(out, symbols[b.Tile(grid.Cell{Row: row, Col: col})])
		}
		out = append(out, '\n')
	}
	return string(out)
}
