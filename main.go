package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/nstehr/rampart/agent"
	"github.com/nstehr/rampart/config"
	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/strategy"
)

const banner = `
 ┬─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┌┬┐
 ├┬┘├─┤│││├─┘├─┤├┬┘ │
 ┴└─┴ ┴┴ ┴┴  ┴ ┴┴└─ ┴

Breach-Driven Tower Defense`

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// stdout is the command channel; everything human-readable goes to stderr.
	fmt.Fprintln(os.Stderr, banner)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg.Logging, os.Stderr))

	layout, err := strategy.LoadLayout(cfg.Strategy.LayoutFile)
	if err != nil {
		slog.Error("failed to load layout", "error", err)
		os.Exit(1)
	}
	engine, err := strategy.NewEngine(layout, cfg.Strategy.Tuning)
	if err != nil {
		slog.Error("failed to build strategy engine", "error", err)
		os.Exit(1)
	}

	a := agent.New(engine)
	conn := ipc.NewConnection(os.Stdin, os.Stdout, nil)
	a.Register(conn)

	slog.Info("starting rampart", "match", a.MatchID.String())
	if err := conn.ReadLoop(); err != nil {
		slog.Error("match aborted", "error", err)
		os.Exit(1)
	}
	slog.Info("match finished", "breaches", engine.History.Len())
}
