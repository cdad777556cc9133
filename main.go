package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/common"
	"github.com/milk9111/save/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:], nil, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("S.A.V.E.")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(common.TPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := NewGame(ctx, cfg, logger)
	if err != nil {
		logger.Error("save: start", "error", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("save: run", "error", err)
		os.Exit(1)
	}
}
