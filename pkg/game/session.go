package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/snakeplanner/snake-planner/pkg/common"
	"github.com/snakeplanner/snake-planner/pkg/grid"
)

var (
	// ErrGameOver is returned when stepping a finished session.
	ErrGameOver = errors.New("game over")
	// ErrInvalidGameCount is returned when asked to play a negative number of games.
	ErrInvalidGameCount = errors.New("invalid number of games")
)

// Runner hands out moves towards the apple.
type Runner interface {
	// GetMoves plans on the full board, walls included.
	GetMoves(gridWidth, gridHeight int, body []grid.Cell, apple grid.Cell) ([]grid.Direction, error)
	// Border is the wall thickness the runner strips.
	Border() int
	// TailVacates tells which tail rule the runner plans with.
	TailVacates() bool
}

// EndReason tells why a session is over.
type EndReason string

const (
	// NotOver marks a running session.
	NotOver EndReason = ""
	// HitSomething means the snake ran into a wall or itself.
	HitSomething EndReason = "hit"
	// BoardFull means there is no room left for another apple.
	BoardFull EndReason = "board_full"
	// OutOfTurns means the session reached its turn limit.
	OutOfTurns EndReason = "max_turns"
)

// Summary describes a finished (or running) session.
type Summary struct {
	ID     string    `json:"id"`
	Score  int       `json:"score"`
	Turns  int       `json:"turns"`
	Length int       `json:"length"`
	Plans  int       `json:"plans"`
	AI     bool      `json:"ai"`
	Reason EndReason `json:"reason"`
}

// Session plays one game, with moves coming from the runner while AI mode is on.
type Session struct {
	id       string
	board    *Board
	runner   Runner
	rng      *rand.Rand
	maxTurns int

	aiMode bool
	moves  []grid.Direction
	apple  grid.Cell
	score  int
	turns  int
	plans  int
	reason EndReason
}

// NewSession sets up a board as described by cfg with AI mode on.
func NewSession(runner Runner, cfg common.GameConfig, seed int64) (*Session, error) {
	border := runner.Border()
	head := grid.Cell{Row: border + 1, Col: border + cfg.StartLength - 1}
	if head.Row >= cfg.Height-border {
		head.Row = border
	}
	var opts []BoardOption
	if runner.TailVacates() {
		opts = append(opts, WithTailVacates())
	}
	board, err := NewBoard(cfg.Width, cfg.Height, border, head, cfg.StartLength, grid.Right, opts...)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:       uuid.New().String(),
		board:    board,
		runner:   runner,
		rng:      rand.New(rand.NewSource(seed)),
		maxTurns: cfg.MaxTurns,
		aiMode:   true,
	}
	s.apple, err = board.SpawnAppleInEmptyTile(s.rng)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Board gives access to the underlying board.
func (s *Session) Board() *Board {
	return s.board
}

// Apple returns the cell of the current apple.
func (s *Session) Apple() grid.Cell {
	return s.apple
}

// AI tells whether moves come from the runner.
func (s *Session) AI() bool {
	return s.aiMode
}

// EnableAI switches to planned moves.
func (s *Session) EnableAI() {
	s.aiMode = true
	s.moves = nil
}

// DisableAI drops the planned moves; the snake keeps its current direction.
func (s *Session) DisableAI() {
	s.aiMode = false
	s.moves = nil
}

// Over tells whether the session ended.
func (s *Session) Over() bool {
	return s.reason != NotOver
}

// requestMoves asks the runner for a new plan; AI mode is turned off if there is none.
func (s *Session) requestMoves() {
	s.plans++
	moves, err := s.runner.GetMoves(s.board.Width(), s.board.Height(), s.board.Body(), s.apple)
	if err != nil {
		klog.Warningf("Session %s: no moves towards %v, disabling AI: %v", s.id, s.apple, err)
		s.DisableAI()
		return
	}
	klog.V(2).Infof("Session %s: found moves: %v", s.id, moves)
	s.moves = moves
}

// steer turns the snake unless that would make it reverse.
func (s *Session) steer(dir grid.Direction) bool {
	if s.board.Len() > 1 && dir == grid.Invert(s.board.Dir()) {
		return false
	}
	s.board.SetDir(dir)
	return true
}

// Step plays a single turn.
func (s *Session) Step() (MoveResult, error) {
	if s.Over() {
		return MoveResult{}, ErrGameOver
	}
	if s.aiMode && len(s.moves) == 0 {
		s.requestMoves()
	}
	if s.aiMode && len(s.moves) > 0 {
		next := s.moves[0]
		s.moves = s.moves[1:]
		if !s.steer(next) {
			klog.Warningf("Session %s: refusing to reverse into %s, dropping plan.", s.id, next)
			s.moves = nil
		}
	}

	res := s.board.Move()
	s.turns++
	switch res.Type {
	case Eat:
		s.score++
		apple, err := s.board.SpawnAppleInEmptyTile(s.rng)
		if errors.Is(err, ErrBoardFull) {
			s.reason = BoardFull
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("session %s: %w", s.id, err)
		}
		s.apple = apple
	case Hit:
		s.reason = HitSomething
		return res, nil
	}
	if s.turns >= s.maxTurns {
		s.reason = OutOfTurns
	}
	return res, nil
}

// Play steps until the session is over.
func (s *Session) Play() (Summary, error) {
	for !s.Over() {
		if _, err := s.Step(); err != nil {
			return s.Summary(), err
		}
	}
	klog.Infof("Session %s ended (%s) after %d turns with a score of %d.", s.id, s.reason, s.turns, s.score)
	return s.Summary(), nil
}

// Summary returns the current stats of the session.
func (s *Session) Summary() Summary {
	return Summary{
		ID:     s.id,
		Score:  s.score,
		Turns:  s.turns,
		Length: s.board.Len(),
		Plans:  s.plans,
		AI:     s.aiMode,
		Reason: s.reason,
	}
}

// PlayAll plays a number of games with cfg.Workers sessions in parallel;
// game i is seeded with cfg.Seed + i. Summaries are returned in game order.
func PlayAll(runner Runner, cfg common.GameConfig, games int) ([]Summary, error) {
	if games < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGameCount, games)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	tasks := make(chan int)
	summaries := make([]Summary, games)
	errs := make([]error, games)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for game := range tasks {
				klog.V(2).Infof("Worker %d playing game: %d.", id, game)
				session, err := NewSession(runner, cfg, cfg.Seed+int64(game))
				if err != nil {
					errs[game] = fmt.Errorf("game %d: %w", game, err)
					continue
				}
				summaries[game], errs[game] = session.Play()
			}
		}(i)
	}
	klog.V(1).Infof("Started %d worker(s).", workers)
	for game := 0; game < games; game++ {
		tasks <- game
	}
	close(tasks)
	wg.Wait()
	return summaries, errors.Join(errs...)
}
