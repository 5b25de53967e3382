package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/snakeplanner/snake-planner/pkg/common"
	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/planner"
	"github.com/snakeplanner/snake-planner/pkg/snake"
)

// ErrNoPath is returned when the planner could not come up with a path.
var ErrNoPath = errors.New("no path found")

// Runner sits between a game and a planner: it translates board coordinates,
// keeps statistics and traces every search.
type Runner struct {
	planner     planner.Planner
	tracer      Tracer
	stats       *Stats
	border      int
	tailVacates bool
	failures    *common.TTLCache[planner.Outcome]
	done        chan struct{}
	closeOnce   sync.Once
}

// NewRunner initializes a runner. The tracer may be nil.
func NewRunner(p planner.Planner, tracer Tracer, cfg common.Config) *Runner {
	r := &Runner{
		planner:     p,
		tracer:      tracer,
		stats:       NewStats(),
		border:      cfg.Runner.Border,
		tailVacates: cfg.Planner.AStar.TailVacates,
	}
	if cfg.Runner.FailureCacheTTL > 0 {
		r.failures, r.done = common.NewCache[planner.Outcome](cfg.Runner.FailureCacheTTL, time.Duration(cfg.Runner.FailureCacheTimeout))
	}
	return r
}

// Close stops the failure cache eviction. It is safe to call more than once.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		if r.done != nil {
			close(r.done)
		}
	})
}

// Stats returns the statistics aggregate of this runner.
func (r *Runner) Stats() *Stats {
	return r.stats
}

// Border returns the wall thickness stripped by GetMoves.
func (r *Runner) Border() int {
	return r.border
}

// TailVacates tells which tail rule the runner plans with.
func (r *Runner) TailVacates() bool {
	return r.tailVacates
}

// GetMoves plans on a board surrounded by a wall: the border is stripped
// before searching, so body and apple are given in board coordinates.
func (r *Runner) GetMoves(gridWidth, gridHeight int, body []grid.Cell, apple grid.Cell) ([]grid.Direction, error) {
	res, err := r.PlanOnBoard(gridWidth, gridHeight, body, apple)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// PlanOnBoard is GetMoves returning the whole search result.
func (r *Runner) PlanOnBoard(gridWidth, gridHeight int, body []grid.Cell, apple grid.Cell) (planner.Result, error) {
	shift := func(c grid.Cell) grid.Cell {
		return grid.Cell{Row: c.Row - r.border, Col: c.Col - r.border}
	}
	adjusted := make([]grid.Cell, len(body))
	for i, c := range body {
		adjusted[i] = shift(c)
	}
	return r.Plan(gridWidth-2*r.border, gridHeight-2*r.border, adjusted, shift(apple))
}

// Plan searches a path for the snake body (head first) to goal on a width x height grid.
func (r *Runner) Plan(width, height int, body []grid.Cell, goal grid.Cell) (planner.Result, error) {
	var opts []snake.ContextOption
	if r.tailVacates {
		opts = append(opts, snake.WithTailVacates())
	}
	ctx, err := snake.NewContext(width, height, goal, opts...)
	if err != nil {
		return planner.Result{}, err
	}
	start, err := snake.NewState(body)
	if err != nil {
		return planner.Result{}, err
	}

	query := fmt.Sprintf("%dx%d|%v|%s", width, height, goal, start)
	if outcome, ok := r.recentFailure(query); ok {
		r.stats.RecordCacheHit()
		failureCacheHits.Inc()
		klog.V(2).Infof("Skipping search for %s: %s recently.", query, outcome)
		return planner.Result{Outcome: outcome}, fmt.Errorf("%w: %s recently for the same query", ErrNoPath, outcome)
	}

	res, err := r.planner.CreatePlan(start, ctx)
	if err != nil {
		return res, err
	}
	r.stats.Record(res)
	recordSearch(res)
	if r.tracer != nil {
		r.tracer.TraceSearch(SearchRecord{
			ID:         uuid.New().String(),
			Timestamp:  time.Now(),
			Width:      width,
			Height:     height,
			Head:       start.Head(),
			Goal:       goal,
			Length:     start.Len(),
			Outcome:    res.Outcome.String(),
			PathLength: len(res.Path),
			Explored:   res.Explored,
			ElapsedMs:  float64(res.Elapsed) / float64(time.Millisecond),
		})
	}

	if !res.Found() {
		if r.failures != nil {
			r.failures.Put(query, res.Outcome)
		}
		return res, fmt.Errorf("%w: %s from %v to %v", ErrNoPath, res.Outcome, start.Head(), goal)
	}
	return res, nil
}

// recentFailure looks up the query in the failure cache.
func (r *Runner) recentFailure(query string) (planner.Outcome, bool) {
	if r.failures == nil {
		return planner.Running, false
	}
	return r.failures.Get(query)
}
