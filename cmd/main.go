package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/snakeplanner/snake-planner/pkg/controller"
	"github.com/snakeplanner/snake-planner/pkg/game"
	"github.com/snakeplanner/snake-planner/pkg/server"

	"github.com/snakeplanner/snake-planner/pkg/common"
	"github.com/snakeplanner/snake-planner/pkg/planner/astar"

	"k8s.io/klog/v2"
)

var (
	config string
	serve  bool
	games  int
)

func main() {
	klog.InitFlags(nil)
	klog.Info("Hello from your friendly snake path planner...")

	// config stuff.
	flag.Parse()
	cfg := common.DefaultConfig()
	if config != "" {
		var err error
		cfg, err = common.ParseConfig(config)
		if err != nil {
			klog.Fatalf("Error loading planner config: %v", err)
		}
	}

	// set logFile
	if cfg.Generic.LogFile != "" {
		err := flag.Set("logtostderr", "false")
		if err != nil {
			klog.Fatalf("Error setting flag logtostderr: %v", err)
		}
		err = flag.Set("alsologtostderr", "true")
		if err != nil {
			klog.Fatalf("Error setting flag alsologtostderr: %v", err)
		}

		logFile, err := os.OpenFile(cfg.Generic.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			klog.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()

		multiWriter := io.MultiWriter(os.Stdout, logFile)
		klog.SetOutput(multiWriter)
		klog.Infof("Successfuly added to klog output the log file: %s", cfg.Generic.LogFile)
	}
	defer klog.Flush()

	// searches are only traced when there is a database to trace to.
	var tracer controller.Tracer
	if cfg.Generic.MongoEndpoint != "" {
		tracer = controller.NewMongoTracer(cfg.Generic.MongoEndpoint)
	}

	// The planning algorithm.
	planner := astar.NewAPlanner(cfg)
	runner := controller.NewRunner(planner, tracer, cfg)
	defer runner.Close()

	if games > 0 {
		summaries, err := game.PlayAll(runner, cfg.Game, games)
		if err != nil {
			klog.Errorf("Not all games could be played: %v", err)
		}
		for i, summary := range summaries {
			klog.Infof("Game %d: score=%d turns=%d length=%d plans=%d ai=%t reason=%s.",
				i, summary.Score, summary.Turns, summary.Length, summary.Plans, summary.AI, summary.Reason)
		}
		stats := runner.Stats().Summary()
		klog.Infof("Searches: %d, failures: %d (timeouts: %d), cache hits: %d, explored: %d (max %d), %.1f states/ms.",
			stats.Searches, stats.Failures, stats.Timeouts, stats.CacheHits, stats.TotalExplored, stats.MaxExplored, stats.StatesPerMs)
	}

	if !serve {
		return
	}
	stopper := make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-signals
		klog.Infof("Received %s, shutting down.", s)
		close(stopper)
	}()

	router := server.NewRouter(server.NewHandlers(runner, tracer, cfg.Server))
	if err := server.Run(cfg.Server, router, stopper); err != nil {
		klog.Errorf("Server stopped: %v", err)
	}
}

func init() {
	flag.StringVar(&config, "config", "", "Path to configuration file.")
	flag.BoolVar(&serve, "serve", false, "Serve the HTTP API.")
	flag.IntVar(&games, "games", 0, "Number of games to autoplay before (optionally) serving.")
}
