package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/snakeplanner/snake-planner/pkg/common"
	"github.com/snakeplanner/snake-planner/pkg/controller"
	"github.com/snakeplanner/snake-planner/pkg/planner"
	"github.com/snakeplanner/snake-planner/pkg/snake"
)

const (
	defaultSearchesLimit = 10
	maxSearchesLimit     = 100

	// bytesPerCell bounds the JSON size of a single cell, whitespace included.
	bytesPerCell = 64
	// requestOverhead covers everything in a path request but the body cells.
	requestOverhead = 4096
)

// ErrRequestTooLarge is returned for path requests beyond the configured limits.
var ErrRequestTooLarge = errors.New("request too large")

// Handlers expose a runner over HTTP.
type Handlers struct {
	runner          *controller.Runner
	tracer          controller.Tracer
	maxCells        int
	maxBodyLength   int
	maxRequestBytes int64
}

// NewHandlers creates the handlers; the tracer may be nil. Path requests are
// limited to the grid size and snake length given in cfg.
func NewHandlers(runner *controller.Runner, tracer controller.Tracer, cfg common.ServerConfig) *Handlers {
	return &Handlers{
		runner:          runner,
		tracer:          tracer,
		maxCells:        cfg.MaxCells,
		maxBodyLength:   cfg.MaxBodyLength,
		maxRequestBytes: int64(cfg.MaxBodyLength)*bytesPerCell + requestOverhead,
	}
}

// checkLimits makes sure a search for req stays within the configured size.
func (h *Handlers) checkLimits(req PathRequest) error {
	if req.Width > h.maxCells || req.Height > h.maxCells || req.Width*req.Height > h.maxCells {
		return fmt.Errorf("%w: grid of %dx%d exceeds %d cells", ErrRequestTooLarge, req.Width, req.Height, h.maxCells)
	}
	if len(req.Body) > h.maxBodyLength {
		return fmt.Errorf("%w: snake of length %d exceeds %d cells", ErrRequestTooLarge, len(req.Body), h.maxBodyLength)
	}
	return nil
}

// HandlePath handles POST /v1/path.
//
// Response:
//
//	200 OK: PathResponse
//	400 Bad Request: malformed request, invalid snake/grid or beyond the limits
//	422 Unprocessable Entity: no path found
func (h *Handlers) HandlePath(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			klog.V(2).Infof("Request body exceeds %d bytes.", tooLarge.Limit)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   ErrRequestTooLarge.Error(),
				Code:    "INVALID_QUERY",
				Details: fmt.Sprintf("request body is limited to %d bytes", tooLarge.Limit),
			})
			return
		}
		klog.V(2).Infof("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	if err := h.checkLimits(req); err != nil {
		klog.V(2).Infof("Rejecting path request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   ErrRequestTooLarge.Error(),
			Code:    "INVALID_QUERY",
			Details: err.Error(),
		})
		return
	}

	var res planner.Result
	var err error
	if req.Walled {
		res, err = h.runner.PlanOnBoard(req.Width, req.Height, req.Body, *req.Goal)
	} else {
		res, err = h.runner.Plan(req.Width, req.Height, req.Body, *req.Goal)
	}
	if err != nil {
		statusCode := http.StatusInternalServerError
		errCode := "PLANNING_FAILED"
		switch {
		case errors.Is(err, controller.ErrNoPath):
			statusCode = http.StatusUnprocessableEntity
			errCode = "NO_PATH"
		case errors.Is(err, snake.ErrEmptyBody),
			errors.Is(err, snake.ErrDuplicateCell),
			errors.Is(err, snake.ErrOutOfBounds),
			errors.Is(err, snake.ErrInvalidGrid):
			statusCode = http.StatusBadRequest
			errCode = "INVALID_QUERY"
		}
		c.JSON(statusCode, ErrorResponse{
			Error:   err.Error(),
			Code:    errCode,
			Details: res.Outcome.String(),
		})
		return
	}

	c.JSON(http.StatusOK, PathResponse{
		Path:      res.Path,
		Length:    len(res.Path),
		Explored:  res.Explored,
		ElapsedMs: float64(res.Elapsed) / float64(time.Millisecond),
		Outcome:   res.Outcome,
	})
}

// HandleStats handles GET /v1/stats.
func (h *Handlers) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.Stats().Summary())
}

// HandleSearches handles GET /v1/searches?limit=N.
func (h *Handlers) HandleSearches(c *gin.Context) {
	if h.tracer == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "tracing is not enabled",
			Code:  "TRACING_DISABLED",
		})
		return
	}
	limit := defaultSearchesLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchesLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "limit must be a number between 1 and " + strconv.Itoa(maxSearchesLimit),
				Code:  "INVALID_LIMIT",
			})
			return
		}
		limit = parsed
	}
	records, err := h.tracer.GetSearches(limit)
	if err != nil {
		klog.Errorf("Could not read searches: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "TRACER_FAILED",
		})
		return
	}
	c.JSON(http.StatusOK, SearchesResponse{Searches: records, Count: len(records)})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}
