package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests for success.

// TestApplyForSuccess tests for success.
func TestApplyForSuccess(t *testing.T) {
	for _, d := range Directions {
		Apply(Cell{Row: 1, Col: 1}, d)
	}
}

// TestInvertForSuccess tests for success.
func TestInvertForSuccess(t *testing.T) {
	for _, d := range Directions {
		Invert(d)
	}
}

// Tests for failure.

// TestApplyForFailure tests for failure.
func TestApplyForFailure(t *testing.T) {
	assert.Panics(t, func() { Apply(Cell{}, Direction(4)) })
}

// TestInvertForFailure tests for failure.
func TestInvertForFailure(t *testing.T) {
	assert.Panics(t, func() { Invert(Direction(42)) })
}

// TestParseDirectionForFailure tests for failure.
func TestParseDirectionForFailure(t *testing.T) {
	_, err := ParseDirection("diagonal")
	assert.Error(t, err)

	var d Direction
	assert.Error(t, json.Unmarshal([]byte(`"north"`), &d))

	_, err = Direction(9).MarshalText()
	assert.Error(t, err)
}

// Tests for sanity.

// TestApplyForSanity tests for sanity.
func TestApplyForSanity(t *testing.T) {
	origin := Cell{Row: 5, Col: 5}
	tests := []struct {
		dir  Direction
		want Cell
	}{
		{Left, Cell{Row: 5, Col: 4}},
		{Right, Cell{Row: 5, Col: 6}},
		{Up, Cell{Row: 6, Col: 5}},
		{Down, Cell{Row: 4, Col: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(origin, tt.dir))
			// going back lands where we started.
			assert.Equal(t, origin, Apply(Apply(origin, tt.dir), Invert(tt.dir)))
		})
	}
}

// TestInvertForSanity tests for sanity.
func TestInvertForSanity(t *testing.T) {
	assert.Equal(t, Right, Invert(Left))
	assert.Equal(t, Left, Invert(Right))
	assert.Equal(t, Down, Invert(Up))
	assert.Equal(t, Up, Invert(Down))
	for _, d := range Directions {
		assert.Equal(t, d, Invert(Invert(d)))
	}
}

// TestInBoundsForSanity tests for sanity.
func TestInBoundsForSanity(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want bool
	}{
		{"tc-1", Cell{Row: 0, Col: 0}, true},
		{"tc-2", Cell{Row: 2, Col: 3}, true},
		{"tc-3", Cell{Row: 3, Col: 0}, false},
		{"tc-4", Cell{Row: 0, Col: 4}, false},
		{"tc-5", Cell{Row: -1, Col: 0}, false},
		{"tc-6", Cell{Row: 0, Col: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBounds(tt.cell, 4, 3); got != tt.want {
				t.Errorf("InBounds(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

// TestDirectionTextForSanity tests for sanity.
func TestDirectionTextForSanity(t *testing.T) {
	raw, err := json.Marshal([]Direction{Up, Left, Down, Right})
	require.NoError(t, err)
	assert.Equal(t, `["up","left","down","right"]`, string(raw))

	var back []Direction
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, []Direction{Up, Left, Down, Right}, back)

	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)
}

// TestManhattanForSanity tests for sanity.
func TestManhattanForSanity(t *testing.T) {
	assert.Equal(t, 0, Manhattan(Cell{Row: 3, Col: 3}, Cell{Row: 3, Col: 3}))
	assert.Equal(t, 1998, Manhattan(Cell{}, Cell{Row: 999, Col: 999}))
	assert.Equal(t, 4, Manhattan(Cell{Row: 2, Col: 0}, Cell{Row: 0, Col: 2}))
}
