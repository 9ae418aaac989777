package minimax

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Options struct {
	// Parallel evaluates the root actions concurrently.
	Parallel bool
	// DisablePruning turns the search into plain minimax.
	DisablePruning bool
}

// Engine is a configurable search front end for callers that need cancellation,
// input validation or search statistics.
type Engine struct {
	logger *slog.Logger
	opts   Options
}

func NewEngine(logger *slog.Logger, opts Options) *Engine {
	return &Engine{
		logger: logger.With("component", "minimax"),
		opts:   opts,
	}
}

// Search validates the board and returns the optimal result for the player to move.
func (that *Engine) Search(ctx context.Context, board tictactoe.Board) (Result, Stats, error) {
	log := that.logger.With("method", "Search", "board", board.String())

	if err := tictactoe.Validate(board); err != nil {
		return Result{}, Stats{}, fmt.Errorf("failed to validate board: %w", err)
	}

	var (
		result Result
		stats  Stats
		err    error
	)

	if that.opts.Parallel && !tictactoe.IsTerminal(board) {
		result, stats, err = that.searchParallel(ctx, board)
	} else {
		s := newSearch(ctx, !that.opts.DisablePruning)
		result = root(s, board)
		stats = s.stats
	}

	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		return Result{}, stats, fmt.Errorf("search canceled: %w", err)
	}

	log.Debug("search finished",
		"action", result.Action.String(),
		"found", result.OK,
		"value", result.Value,
		"nodes", stats.Nodes,
		"cutoffs", stats.Cutoffs,
	)

	return result, stats, nil
}

// searchParallel evaluates every root action in its own goroutine with a full window,
// so every child value is exact. The merge walks the actions in row-major order with
// the same strict-improvement rule as the sequential search, which makes the chosen
// action identical to the sequential one.
func (that *Engine) searchParallel(ctx context.Context, board tictactoe.Board) (Result, Stats, error) {
	actions := tictactoe.LegalActions(board)
	maximize := tictactoe.PlayerToMove(board) == tictactoe.X

	values := make([]int, len(actions))
	children := make([]Stats, len(actions))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, action := range actions {
		group.Go(func() error {
			child, err := tictactoe.ApplyMove(board, action)
			if err != nil {
				return fmt.Errorf("failed to apply root action %s: %w", action, err)
			}

			s := newSearch(groupCtx, !that.opts.DisablePruning)
			if maximize {
				values[i] = minValue(s, child, negInf, posInf).Value
			} else {
				values[i] = maxValue(s, child, negInf, posInf).Value
			}
			children[i] = s.stats

			return groupCtx.Err()
		})
	}

	stats := Stats{Nodes: 1}
	if err := group.Wait(); err != nil {
		return Result{}, stats, err
	}

	best := Result{Value: posInf}
	if maximize {
		best.Value = negInf
	}

	for i, action := range actions {
		stats.add(children[i])

		if (maximize && values[i] > best.Value) || (!maximize && values[i] < best.Value) {
			best = Result{Value: values[i], Action: action, OK: true}
		}
	}

	return best, stats, nil
}
