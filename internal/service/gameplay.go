package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrPlayerNotFound = errors.New("player not found")

type GamePlayService interface {
	NewGame(ctx context.Context, humanMark tictactoe.Cell) (*entity.Game, error)
	NewSelfPlayGame(ctx context.Context) (*entity.Game, error)

	MakeTurn(ctx context.Context, game *entity.Game, playerID string, action tictactoe.Action) (*entity.Game, error)
	PlayOut(ctx context.Context, game *entity.Game, onTurn func(game *entity.Game, action tictactoe.Action)) error
	Hint(ctx context.Context, game *entity.Game) (tictactoe.Action, error)
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
	startBoard tictactoe.Board
}

func NewGamePlayService(logger *slog.Logger, botService BotService, startBoard tictactoe.Board) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		botService: botService,
		startBoard: startBoard,
	}
}

// NewGame starts a human vs bot game. The bot moves right away when it holds the turn.
func (that *gamePlayService) NewGame(ctx context.Context, humanMark tictactoe.Cell) (*entity.Game, error) {
	if humanMark != tictactoe.X && humanMark != tictactoe.O {
		return nil, fmt.Errorf("%w: human mark must be X or O", apperror.ErrInvalidInput)
	}

	game, err := entity.NewGame(uuid.NewString(), that.startBoard,
		entity.NewHumanPlayer(uuid.NewString(), humanMark),
		entity.NewBotPlayer(uuid.NewString(), humanMark.Opponent()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", humanMark.String(), "board", game.Board.String())

	if err = that.replyIfBotTurn(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// NewSelfPlayGame starts a game where both marks are played by the engine.
func (that *gamePlayService) NewSelfPlayGame(_ context.Context) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), that.startBoard,
		entity.NewBotPlayer(uuid.NewString(), tictactoe.X),
		entity.NewBotPlayer(uuid.NewString(), tictactoe.O),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("self-play game created", "gameID", game.ID, "board", game.Board.String())

	return game, nil
}

// MakeTurn plays the human move and lets the bot answer while the game is still on.
func (that *gamePlayService) MakeTurn(ctx context.Context, game *entity.Game, playerID string, action tictactoe.Action) (*entity.Game, error) {
	player, ok := game.PlayerByID(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if err := game.MakeTurn(player.Mark, action); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err := that.replyIfBotTurn(ctx, game); err != nil {
		return game, err
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner.String(), "tie", game.IsTie())
	}

	return game, nil
}

// PlayOut lets the bots play until the game is over. onTurn is called after every ply.
func (that *gamePlayService) PlayOut(ctx context.Context, game *entity.Game, onTurn func(*entity.Game, tictactoe.Action)) error {
	log := that.logger.With("method", "PlayOut", "gameID", game.ID)

	for game.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("play out interrupted: %w", err)
		}

		action, err := that.botService.MakeTurn(ctx, game)
		if err != nil {
			return fmt.Errorf("failed to play bot turn: %w", err)
		}

		if onTurn != nil {
			onTurn(game, action)
		}
	}

	log.Info("game finished", "winner", game.Winner.String(), "tie", game.IsTie())

	return nil
}

func (that *gamePlayService) Hint(ctx context.Context, game *entity.Game) (tictactoe.Action, error) {
	action, err := that.botService.Suggest(ctx, game)
	if err != nil {
		return tictactoe.Action{}, fmt.Errorf("failed to get hint: %w", err)
	}

	return action, nil
}

func (that *gamePlayService) replyIfBotTurn(ctx context.Context, game *entity.Game) error {
	player, ok := game.CurrentPlayer()
	if !ok || !player.IsBot() {
		return nil
	}

	if _, err := that.botService.MakeTurn(ctx, game); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
