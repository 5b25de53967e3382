package controller

import (
	"sync"
	"time"

	"github.com/snakeplanner/snake-planner/pkg/planner"
)

// Summary is a snapshot of the statistics gathered so far.
type Summary struct {
	Searches      int           `json:"searches"`
	Failures      int           `json:"failures"`
	Timeouts      int           `json:"timeouts"`
	CacheHits     int           `json:"cache_hits"`
	TotalExplored int           `json:"total_explored"`
	MaxExplored   int           `json:"max_explored"`
	TotalElapsed  time.Duration `json:"total_elapsed_ns"`
	StatesPerMs   float64       `json:"states_per_ms"`
}

// Stats aggregates the results of all searches a runner made. Safe for concurrent use.
type Stats struct {
	mLock   sync.Mutex
	summary Summary
}

// NewStats initializes an empty aggregate.
func NewStats() *Stats {
	return &Stats{}
}

// Record adds the result of a search.
func (s *Stats) Record(res planner.Result) {
	s.mLock.Lock()
	defer s.mLock.Unlock()
	s.summary.Searches++
	if res.Outcome.Failed() {
		s.summary.Failures++
	}
	if res.Outcome == planner.TimedOut {
		s.summary.Timeouts++
	}
	s.summary.TotalExplored += res.Explored
	if res.Explored > s.summary.MaxExplored {
		s.summary.MaxExplored = res.Explored
	}
	s.summary.TotalElapsed += res.Elapsed
}

// RecordCacheHit counts a query answered by the failure cache.
func (s *Stats) RecordCacheHit() {
	s.mLock.Lock()
	s.summary.CacheHits++
	s.mLock.Unlock()
}

// Summary returns a copy of the current aggregate.
func (s *Stats) Summary() Summary {
	s.mLock.Lock()
	defer s.mLock.Unlock()
	res := s.summary
	if ms := float64(res.TotalElapsed) / float64(time.Millisecond); ms > 0 {
		res.StatesPerMs = float64(res.TotalExplored) / ms
	}
	return res
}
