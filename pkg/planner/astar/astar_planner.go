package astar

import (
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/snakeplanner/snake-planner/pkg/common"
	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/planner"
	"github.com/snakeplanner/snake-planner/pkg/snake"
)

const (
	// DefaultTimeBudget is the wall-clock limit of a single search.
	DefaultTimeBudget = time.Duration(common.DefaultTimeBudget) * time.Millisecond
	// DefaultTieBreak inflates the heuristic just enough to order equal-cost candidates.
	DefaultTieBreak = common.DefaultTieBreak
)

// Option tweaks a call to Search.
type Option func(*options)

// WithBudget overrides the time budget.
func WithBudget(budget time.Duration) Option {
	return func(o *options) {
		o.budget = budget
	}
}

// WithTieBreak overrides the tie-break factor.
func WithTieBreak(factor float64) Option {
	return func(o *options) {
		o.tieBreak = factor
	}
}

// WithoutHeadPruning disables discarding successors whose head cell was already expanded.
func WithoutHeadPruning() Option {
	return func(o *options) {
		o.headPruning = false
	}
}

// WithTailVacates lets the snake move onto the cell its tail is leaving.
func WithTailVacates() Option {
	return func(o *options) {
		o.tailVacates = true
	}
}

// Search finds a path on a width x height grid for the snake body (head
// first) to the goal cell.
func Search(width, height int, body []grid.Cell, goal grid.Cell, opts ...Option) (planner.Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var ctxOpts []snake.ContextOption
	if o.tailVacates {
		ctxOpts = append(ctxOpts, snake.WithTailVacates())
	}
	ctx, err := snake.NewContext(width, height, goal, ctxOpts...)
	if err != nil {
		return planner.Result{}, err
	}
	start, err := snake.NewState(body)
	if err != nil {
		return planner.Result{}, err
	}
	return solve(start, ctx, o)
}

// APlanner represent a planner using the A* algorithm.
type APlanner struct {
	cfg common.Config
}

// NewAPlanner initializes a new planner.
func NewAPlanner(config common.Config) *APlanner {
	return &APlanner{cfg: config}
}

// options translates the planner's configuration.
func (p APlanner) options() options {
	o := defaultOptions()
	if p.cfg.Planner.AStar.TimeBudget > 0 {
		o.budget = time.Duration(p.cfg.Planner.AStar.TimeBudget) * time.Millisecond
	}
	if p.cfg.Planner.AStar.TieBreak > 0 {
		o.tieBreak = p.cfg.Planner.AStar.TieBreak
	}
	o.headPruning = p.cfg.Planner.AStar.HeadPruning
	return o
}

// CreatePlan searches a path from start to the goal of ctx.
func (p APlanner) CreatePlan(start snake.State, ctx snake.Context) (planner.Result, error) {
	klog.V(2).Infof("Trying to create a plan on %dx%d from %v to %v.", ctx.Width, ctx.Height, start, ctx.Goal)
	res, err := solve(start, ctx, p.options())
	if err != nil {
		return res, fmt.Errorf("a* planner: %w", err)
	}
	if res.Found() {
		klog.V(2).Infof("A*star planner found: %v.", res.Path)
	}
	return res, nil
}
