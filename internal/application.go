package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

var ErrUnknownMode = errors.New("unknown mode")

// RunApp - runs the application on the process stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires the engine, services and console and runs the configured mode until it ends or ctx is done.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	humanMark, err := tictactoe.ParseCell(conf.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	if humanMark != tictactoe.X && humanMark != tictactoe.O {
		return fmt.Errorf("%w: human mark must be X or O, got %q", apperror.ErrInvalidInput, conf.HumanMark)
	}

	startBoard := tictactoe.InitialState()
	if conf.StartPosition != "" {
		if startBoard, err = tictactoe.ParseBoard(conf.StartPosition); err != nil {
			return fmt.Errorf("invalid start position: %w", err)
		}
	}

	engine := minimax.NewEngine(logger, minimax.Options{
		Parallel:       conf.Search.Parallel,
		DisablePruning: conf.Search.DisablePruning,
	})
	botService := service.NewBotService(logger, engine)
	gamePlayService := service.NewGamePlayService(logger, botService, startBoard)
	terminal := console.New(logger, gamePlayService, console.NewRenderer(out, conf.NoColor), in, humanMark)

	var run func(context.Context) error

	switch conf.Mode {
	case config.ModeHuman:
		run = terminal.Run
	case config.ModeSelfPlay:
		run = terminal.SelfPlay
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}

	// run console
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "mode", conf.Mode)
		errCh <- run(ctx)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		log.Info("Console finished")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
