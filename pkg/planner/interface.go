package planner

import (
	"fmt"
	"time"

	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/snake"
)

// Outcome describes how a search ended.
type Outcome int

const (
	// Running is the state of a search that has not finished yet.
	Running Outcome = iota
	// Succeeded means a path to the goal was found.
	Succeeded
	// TimedOut means the time budget ran out before the goal was reached.
	TimedOut
	// Exhausted means every reachable state was explored without reaching the goal.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case TimedOut:
		return "timed_out"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{Running, Succeeded, TimedOut, Exhausted} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome: %q", text)
}

// Failed tells whether the search ended without a path.
func (o Outcome) Failed() bool {
	return o == TimedOut || o == Exhausted
}

// Result holds the outcome of a single search.
type Result struct {
	// Path is nil when no path was found.
	Path     []grid.Direction
	Elapsed  time.Duration
	Explored int
	Outcome  Outcome
}

// Found tells whether the result carries a path.
func (r Result) Found() bool {
	return r.Path != nil
}

// Planner represents the basic interface all path planners should adhere too.
type Planner interface {
	// CreatePlan searches a path for the snake in start towards the context's goal.
	CreatePlan(start snake.State, ctx snake.Context) (Result, error)
}
