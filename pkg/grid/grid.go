// Package grid holds the geometry of the board the snake lives on.
//
// Rows grow upwards: (0,0) is the bottom-left cell.
package grid

import (
	"fmt"
	"strings"
)

// Cell is a position on the grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns the number of single steps between two cells on an empty grid.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the four moves a snake can make.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists the moves in the order successors get expanded.
var Directions = [4]Direction{Down, Up, Left, Right}

var directionNames = [...]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

// Valid tells whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction: %d", uint8(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	tmp, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = tmp
	return nil
}

// ParseDirection reads a direction name; case is ignored.
func ParseDirection(name string) (Direction, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range directionNames {
		if n == lower {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction: %q", name)
}

// Apply returns the neighbour of c in direction d. Panics on an invalid direction.
func Apply(c Cell, d Direction) Cell {
	switch d {
	case Left:
		return Cell{Row: c.Row, Col: c.Col - 1}
	case Right:
		return Cell{Row: c.Row, Col: c.Col + 1}
	case Up:
		return Cell{Row: c.Row + 1, Col: c.Col}
	case Down:
		return Cell{Row: c.Row - 1, Col: c.Col}
	}
	panic(fmt.Sprintf("grid: cannot apply invalid direction %d to %v", uint8(d), c))
}

// Invert returns the opposite direction. Panics on an invalid direction.
func Invert(d Direction) Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	panic(fmt.Sprintf("grid: cannot invert invalid direction %d", uint8(d)))
}

// InBounds checks if c lies on a width x height grid.
func InBounds(c Cell, width, height int) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}
