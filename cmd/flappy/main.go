package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/lixenwraith/flappy-term/config"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
)

var (
	configFlag  = flag.String("config", "", "path to a TOML or YAML config file")
	profileFlag = flag.String("profile", "", "profile the frame loop: cpu or mem")
)

func main() {
	flag.Parse()
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 2
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 2
	}
	defer logger.Sync()

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		fmt.Fprintf(os.Stderr, "flappy: unknown profile mode %q\n", *profileFlag)
		return 2
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("create screen", zap.Error(err))
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		logger.Error("init screen", zap.Error(err))
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 1
	}
	core.SetCrashReset(screen.Fini)

	// Panic recovery: restore the terminal even if the frame loop crashes
	defer func() {
		if r := recover(); r != nil {
			logger.Error("crash", zap.Any("panic", r))
			logger.Sync()
			core.HandleCrash(r)
		}
	}()

	a, err := newApp(cfg, screen, engine.NewMonotonicTimeProvider(), logger)
	if err != nil {
		screen.Fini()
		logger.Error("bootstrap", zap.Error(err))
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.run(ctx)
	a.close()
	logger.Info("shutdown", a.registry.Fields()...)
	if err != nil {
		logger.Error("frame loop failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 1
	}
	return 0
}
