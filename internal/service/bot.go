package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (tictactoe.Action, error)
	Suggest(ctx context.Context, game *entity.Game) (tictactoe.Action, error)
}

type searcher interface {
	Search(ctx context.Context, board tictactoe.Board) (minimax.Result, minimax.Stats, error)
}

type botService struct {
	logger *slog.Logger
	engine searcher
}

func NewBotService(logger *slog.Logger, engine searcher) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
	}
}

// MakeTurn plays the engine's move for the bot whose mark is to move.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (tictactoe.Action, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	botPlayer, ok := game.CurrentPlayer()
	if !ok || !botPlayer.IsBot() {
		return tictactoe.Action{}, ErrBotNotFound
	}

	action, err := that.Suggest(ctx, game)
	if err != nil {
		return tictactoe.Action{}, err
	}

	if err = game.MakeTurn(botPlayer.Mark, action); err != nil {
		return tictactoe.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Info("bot made turn", "mark", botPlayer.Mark.String(), "action", action.String())

	return action, nil
}

// Suggest returns the engine's best action for the side to move without playing it.
func (that *botService) Suggest(ctx context.Context, game *entity.Game) (tictactoe.Action, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return tictactoe.Action{}, err
	}

	result, _, err := that.engine.Search(ctx, game.Board)
	if err != nil {
		return tictactoe.Action{}, fmt.Errorf("failed to search best action: %w", err)
	}

	if !result.OK {
		return tictactoe.Action{}, ErrNoAvailableMoves
	}

	return result.Action, nil
}
