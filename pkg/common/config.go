package common

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"k8s.io/klog/v2"
)

// Config holds all the configuration information.
type Config struct {
	Generic GenericConfig `json:"generic"`
	Planner PlannerConfig `json:"planner"`
	Runner  RunnerConfig  `json:"runner"`
	Server  ServerConfig  `json:"server"`
	Game    GameConfig    `json:"game"`
}

// GenericConfig captures generic configuration fields.
type GenericConfig struct {
	MongoEndpoint string `json:"mongo_endpoint"`
	LogFile       string `json:"log_file"`
}

// PlannerConfig holds planner related configs.
type PlannerConfig struct {
	AStar struct {
		TimeBudget  int     `json:"time_budget"`
		TieBreak    float64 `json:"tie_break"`
		HeadPruning bool    `json:"head_pruning"`
		TailVacates bool    `json:"tail_vacates"`
	} `json:"astar"`
}

// RunnerConfig holds configs for the runner sitting between the game and the planner.
type RunnerConfig struct {
	Border              int `json:"border"`
	FailureCacheTTL     int `json:"failure_cache_ttl"`
	FailureCacheTimeout int `json:"failure_cache_timeout"`
}

// ServerConfig holds configs of the HTTP API.
type ServerConfig struct {
	Endpoint      string `json:"endpoint"`
	Port          int    `json:"port"`
	MaxCells      int    `json:"max_cells"`
	MaxBodyLength int    `json:"max_body_length"`
}

// GameConfig holds configs for the autoplay games; width & height include the border.
type GameConfig struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	StartLength int   `json:"start_length"`
	MaxTurns    int   `json:"max_turns"`
	Seed        int64 `json:"seed"`
	Workers     int   `json:"workers"`
}

const (
	// DefaultTimeBudget is the default time budget (ms) of a single search.
	DefaultTimeBudget = 1000
	// DefaultTieBreak is the default factor applied to the heuristic.
	DefaultTieBreak = 1.001
	// MaxTimeBudget is max time budget (ms) of a single search.
	MaxTimeBudget = 60000
	// MaxTieBreak is the (exclusive) upper bound for the tie-break factor; it
	// keeps the heuristic inflation well below a single step on the grids searched.
	MaxTieBreak = 1.01
	// MaxBorder is max width of the border the runner strips.
	MaxBorder = 16
	// MaxFailureCacheTimeout is max timeout (ms) between evictions in the failure cache.
	MaxFailureCacheTimeout = 50000
	// MaxFailureCacheTTL is max time-to-live (ms) for an entry in the failure cache.
	MaxFailureCacheTTL = 500000
	// MaxGameSize is max width/height of an autoplay board.
	MaxGameSize = 512
	// MaxWorkers is max number of games played in parallel.
	MaxWorkers = 64
	// DefaultMaxCells is the default limit on width x height of a grid sent to the server.
	DefaultMaxCells = 65536
	// MaxServerCells is the largest grid the server can be configured to accept.
	MaxServerCells = MaxGameSize * MaxGameSize
	// DefaultMaxBodyLength is the default limit on the snake length sent to the server.
	DefaultMaxBodyLength = 1024
)

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Planner.AStar.TimeBudget = DefaultTimeBudget
	cfg.Planner.AStar.TieBreak = DefaultTieBreak
	cfg.Planner.AStar.HeadPruning = true
	cfg.Runner.Border = 1
	cfg.Runner.FailureCacheTTL = 2000
	cfg.Runner.FailureCacheTimeout = 500
	cfg.Server.Endpoint = "localhost"
	cfg.Server.Port = 8080
	cfg.Server.MaxCells = DefaultMaxCells
	cfg.Server.MaxBodyLength = DefaultMaxBodyLength
	cfg.Game.Width = 20
	cfg.Game.Height = 12
	cfg.Game.StartLength = 2
	cfg.Game.MaxTurns = 2000
	cfg.Game.Seed = 1
	cfg.Game.Workers = 1
	return cfg
}

// LoadConfig reads the configuration file and marshals it into an object.
func LoadConfig(filename string, createType func() interface{}) (interface{}, error) {
	tmp, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %s", err)
	}
	cfg := createType()
	err = json.Unmarshal(tmp, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %s", err)
	}
	return cfg, nil
}

// ParseConfig loads the configuration from a JSON file. Fields missing in
// the file keep their default values.
func ParseConfig(filename string) (Config, error) {
	tmp, err := LoadConfig(filename, func() interface{} {
		cfg := DefaultConfig()
		return &cfg
	})
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config: %s", err)
	}
	result := tmp.(*Config)
	return *result, ValidateConfig(*result)
}

// ValidateConfig checks that all values are within the provided limits.
func ValidateConfig(cfg Config) error {
	if cfg.Planner.AStar.TimeBudget <= 0 ||
		cfg.Planner.AStar.TimeBudget > MaxTimeBudget ||
		cfg.Planner.AStar.TieBreak < 1.0 ||
		cfg.Planner.AStar.TieBreak >= MaxTieBreak {
		return fmt.Errorf("invalid planner value: Out of the provided limits")
	}
	if cfg.Runner.Border < 0 ||
		cfg.Runner.Border > MaxBorder ||
		cfg.Runner.FailureCacheTTL < 0 ||
		cfg.Runner.FailureCacheTTL > MaxFailureCacheTTL ||
		cfg.Runner.FailureCacheTimeout < 0 ||
		cfg.Runner.FailureCacheTimeout > MaxFailureCacheTimeout {
		return fmt.Errorf("invalid runner value: Out of the provided limits")
	}
	if cfg.Runner.FailureCacheTTL > 0 && cfg.Runner.FailureCacheTimeout <= 0 {
		return fmt.Errorf("invalid runner value: failure cache needs a timeout")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid input value: Port number is not in a valid range: %d", cfg.Server.Port)
	}
	if cfg.Server.MaxCells < 1 || cfg.Server.MaxCells > MaxServerCells ||
		cfg.Server.MaxBodyLength < 1 || cfg.Server.MaxBodyLength > cfg.Server.MaxCells {
		return fmt.Errorf("invalid server value: Out of the provided limits")
	}
	minSize := 2*cfg.Runner.Border + 1
	if cfg.Game.Width < minSize || cfg.Game.Width > MaxGameSize ||
		cfg.Game.Height < minSize || cfg.Game.Height > MaxGameSize {
		return fmt.Errorf("invalid game value: board must be between %d and %d cells wide and high", minSize, MaxGameSize)
	}
	if cfg.Game.StartLength < 1 || cfg.Game.MaxTurns < 1 ||
		cfg.Game.Workers < 1 || cfg.Game.Workers > MaxWorkers {
		return fmt.Errorf("invalid game value: Out of the provided limits")
	}
	if cfg.Generic.MongoEndpoint != "" && !checkURL(cfg.Generic.MongoEndpoint) {
		return fmt.Errorf("invalid URL")
	}
	return nil
}

// checkURL validate if the input url is fine.
func checkURL(urlpath string) bool {
	_, err := url.ParseRequestURI(urlpath)
	if err != nil {
		klog.Error(err)
		return false
	}
	return true
}
