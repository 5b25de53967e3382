package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/planner"
)

// Tests for success.

// TestRecordForSuccess tests for success.
func TestRecordForSuccess(_ *testing.T) {
	s := NewStats()
	s.Record(planner.Result{})
}

// Tests for sanity.

// TestSummaryForSanity tests for sanity.
func TestSummaryForSanity(t *testing.T) {
	s := NewStats()
	assert.Equal(t, Summary{}, s.Summary())

	s.Record(planner.Result{Path: []grid.Direction{grid.Up}, Explored: 10, Elapsed: 2 * time.Millisecond, Outcome: planner.Succeeded})
	s.Record(planner.Result{Explored: 50, Elapsed: 2 * time.Millisecond, Outcome: planner.TimedOut})
	s.Record(planner.Result{Explored: 20, Elapsed: time.Millisecond, Outcome: planner.Exhausted})
	s.RecordCacheHit()

	summary := s.Summary()
	assert.Equal(t, 3, summary.Searches)
	assert.Equal(t, 2, summary.Failures)
	assert.Equal(t, 1, summary.Timeouts)
	assert.Equal(t, 1, summary.CacheHits)
	assert.Equal(t, 80, summary.TotalExplored)
	assert.Equal(t, 50, summary.MaxExplored)
	assert.Equal(t, 5*time.Millisecond, summary.TotalElapsed)
	assert.InDelta(t, 16.0, summary.StatesPerMs, 1e-9)
}
