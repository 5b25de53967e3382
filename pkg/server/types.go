package server

import (
	"github.com/snakeplanner/snake-planner/pkg/controller"
	"github.com/snakeplanner/snake-planner/pkg/grid"
	"github.com/snakeplanner/snake-planner/pkg/planner"
)

// PathRequest is the body of POST /v1/path.
type PathRequest struct {
	Width  int         `json:"width" binding:"required,min=1"`
	Height int         `json:"height" binding:"required,min=1"`
	Body   []grid.Cell `json:"body" binding:"required,min=1"`
	Goal   *grid.Cell  `json:"goal" binding:"required"`
	// Walled means width, height and cells include the runner's border.
	Walled bool `json:"walled"`
}

// PathResponse is returned when a path was found.
type PathResponse struct {
	Path      []grid.Direction `json:"path"`
	Length    int              `json:"length"`
	Explored  int              `json:"explored"`
	ElapsedMs float64          `json:"elapsed_ms"`
	Outcome   planner.Outcome  `json:"outcome"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// SearchesResponse is returned by GET /v1/searches.
type SearchesResponse struct {
	Searches []controller.SearchRecord `json:"searches"`
	Count    int                       `json:"count"`
}

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
