package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/lanebattle/internal/config"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/loop"
	"github.com/tomz197/lanebattle/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.ConfigPathEnv+")")
	logPath := flag.String("log", "", "write logs to this file; the terminal is busy drawing")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	autopilot := flag.Bool("autopilot", false, "let the computer play your side too")
	flag.Parse()

	if err := run(*configPath, *logPath, *seed, *autopilot); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, seed int64, autopilot bool) error {
	cfg, err := config.Load(config.ConfigPath(configPath))
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, cfg.LogLevel)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Server: server.Options{
			Rules:     cfg.Rules(),
			Autopilot: autopilot,
			Seed:      seed,
		},
		Username: username(),
		Logger:   logger,
	})
}

func username() string {
	return config.GetEnv("USER", "player")
}
