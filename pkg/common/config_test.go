package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig stores content in a temporary config file.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(name, []byte(content), 0600))
	return name
}

// Tests for success.

// TestParseConfigForSuccess tests for success.
func TestParseConfigForSuccess(t *testing.T) {
	_, err := ParseConfig("../../defaults.json")
	if err != nil {
		t.Errorf("Now this should have worked :-) %v", err)
	}
}

// TestDefaultConfigForSuccess tests for success.
func TestDefaultConfigForSuccess(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultConfig()))
}

// Tests for failure.

// TestParseConfigForFailure tests for failure.
func TestParseConfigForFailure(t *testing.T) {
	_, err := ParseConfig("foo.yaml")
	if err == nil {
		t.Errorf("The code did not return an error!")
	}

	_, err = ParseConfig("config.go")
	if err == nil {
		t.Errorf("The code did not return an error!")
	}
}

// TestValidateConfigForFailure tests for failure.
func TestValidateConfigForFailure(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero budget", func(c *Config) { c.Planner.AStar.TimeBudget = 0 }},
		{"huge budget", func(c *Config) { c.Planner.AStar.TimeBudget = MaxTimeBudget + 1 }},
		{"tie break below one", func(c *Config) { c.Planner.AStar.TieBreak = 0.5 }},
		{"tie break too large", func(c *Config) { c.Planner.AStar.TieBreak = MaxTieBreak }},
		{"tie break far off", func(c *Config) { c.Planner.AStar.TieBreak = 1.9 }},
		{"negative border", func(c *Config) { c.Runner.Border = -1 }},
		{"cache without tick", func(c *Config) { c.Runner.FailureCacheTimeout = 0 }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"no cells", func(c *Config) { c.Server.MaxCells = 0 }},
		{"too many cells", func(c *Config) { c.Server.MaxCells = MaxServerCells + 1 }},
		{"no body length", func(c *Config) { c.Server.MaxBodyLength = 0 }},
		{"body longer than grid", func(c *Config) { c.Server.MaxBodyLength = c.Server.MaxCells + 1 }},
		{"board too small", func(c *Config) { c.Game.Width = 2 }},
		{"board too large", func(c *Config) { c.Game.Height = MaxGameSize + 1 }},
		{"no snake", func(c *Config) { c.Game.StartLength = 0 }},
		{"no turns", func(c *Config) { c.Game.MaxTurns = 0 }},
		{"no workers", func(c *Config) { c.Game.Workers = 0 }},
		{"too many workers", func(c *Config) { c.Game.Workers = MaxWorkers + 1 }},
		{"mongo url", func(c *Config) { c.Generic.MongoEndpoint = "xjkldaoiu/" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

// Tests for sanity.

// TestParseConfigForSanity tests for sanity.
func TestParseConfigForSanity(t *testing.T) {
	name := writeConfig(t, `{"planner": {"astar": {"time_budget": 250, "tie_break": 1.005, "head_pruning": false, "tail_vacates": true}}, "server": {"port": 9090}}`)
	cfg, err := ParseConfig(name)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Planner.AStar.TimeBudget)
	assert.Equal(t, 1.005, cfg.Planner.AStar.TieBreak)
	assert.False(t, cfg.Planner.AStar.HeadPruning)
	assert.True(t, cfg.Planner.AStar.TailVacates)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DefaultMaxCells, cfg.Server.MaxCells)
	// untouched sections keep their defaults.
	assert.Equal(t, DefaultConfig().Game, cfg.Game)
	assert.Equal(t, 1, cfg.Runner.Border)

	cfg, err = ParseConfig("../../defaults.json")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeBudget, cfg.Planner.AStar.TimeBudget)
	assert.Equal(t, DefaultTieBreak, cfg.Planner.AStar.TieBreak)
	assert.True(t, cfg.Planner.AStar.HeadPruning)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestCheckURL(t *testing.T) {
	type args struct {
		urlpath string
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"tc-1", args{urlpath: "mongodb://planner-mongodb-service:27017/"}, true},
		{"tc-2", args{urlpath: "xjkldaoiu/"}, false},
		{"tc-3", args{urlpath: "http://localhost:8080/v1/path"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkURL(tt.args.urlpath); got != tt.want {
				t.Errorf("checkURL() = %v, want %v", got, tt.want)
			}
		})
	}
}
