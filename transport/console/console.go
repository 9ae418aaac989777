package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const helpText = `commands:
  move <row> <col>   play a cell, also "<row> <col>" or a cell number 1-9
  hint               show the engine's move for you
  new                start a new game
  board              show the board
  help               show this text
  quit               leave`

var errQuit = errors.New("quit")

type Console struct {
	logger   *slog.Logger
	gamePlay service.GamePlayService
	renderer *Renderer

	in        io.Reader
	humanMark tictactoe.Cell
	game      *entity.Game

	handlers map[string]func(ctx context.Context, args []string) error
}

func New(logger *slog.Logger, gamePlay service.GamePlayService, renderer *Renderer, in io.Reader, humanMark tictactoe.Cell) *Console {
	console := &Console{
		logger:    logger.With("component", "console"),
		gamePlay:  gamePlay,
		renderer:  renderer,
		in:        in,
		humanMark: humanMark,

		handlers: make(map[string]func(context.Context, []string) error),
	}

	console.handlers["move"] = console.handleMove
	console.handlers["hint"] = console.handleHint
	console.handlers["new"] = console.handleNewGame
	console.handlers["board"] = console.handleBoard
	console.handlers["help"] = console.handleHelp
	console.handlers["quit"] = console.handleQuit
	console.handlers["exit"] = console.handleQuit

	return console
}

// Run starts a game against the engine and processes commands until quit, EOF or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	if err := that.handleNewGame(ctx, nil); err != nil {
		return err
	}

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		err := that.dispatch(ctx, scanner.Text())
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			log.Info("player left")
			return nil
		case isRecoverable(err):
			log.Debug("command rejected", "error", err)
			that.renderer.Error(err)
		default:
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	log.Info("input closed")

	return nil
}

// SelfPlay lets the engine play both sides and prints every ply.
func (that *Console) SelfPlay(ctx context.Context) error {
	game, err := that.gamePlay.NewSelfPlayGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start self-play: %w", err)
	}

	that.renderer.Board(game.Board)

	err = that.gamePlay.PlayOut(ctx, game, func(game *entity.Game, action tictactoe.Action) {
		that.renderer.Ply(game.Board.At(action), action)
		that.renderer.Board(game.Board)
	})
	if err != nil {
		return err
	}

	that.renderer.Outcome(game)

	return nil
}

func (that *Console) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command := strings.ToLower(fields[0])
	if _, err := strconv.Atoi(command); err == nil {
		return that.handleMove(ctx, fields)
	}

	handler, ok := that.handlers[command]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, fields[0])
	}

	return handler(ctx, fields[1:])
}

func (that *Console) handleMove(ctx context.Context, args []string) error {
	action, err := parseAction(args)
	if err != nil {
		return err
	}

	human, ok := that.game.PlayerByMark(that.humanMark)
	if !ok {
		return fmt.Errorf("%w: %s", service.ErrPlayerNotFound, that.humanMark)
	}

	before := that.game.Board

	game, err := that.gamePlay.MakeTurn(ctx, that.game, human.ID, action)
	if err != nil {
		return err
	}
	that.game = game

	that.renderer.Ply(that.humanMark, action)
	if reply, ok := botReply(before, game.Board, action); ok {
		that.renderer.Ply(that.humanMark.Opponent(), reply)
	}
	that.renderer.Board(game.Board)

	if game.IsFinished() {
		that.renderer.Outcome(game)
		that.renderer.Message(`type "new" to play again or "quit" to leave`)
	}

	return nil
}

func (that *Console) handleHint(ctx context.Context, _ []string) error {
	action, err := that.gamePlay.Hint(ctx, that.game)
	if err != nil {
		return err
	}

	that.renderer.Message("hint: %s", action)

	return nil
}

func (that *Console) handleNewGame(ctx context.Context, _ []string) error {
	game, err := that.gamePlay.NewGame(ctx, that.humanMark)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	that.game = game

	that.logger.Debug("game started", "gameID", game.ID)

	that.renderer.Message("you play %s", that.renderer.cell(that.humanMark))
	that.renderer.Board(game.Board)

	if game.IsFinished() {
		that.renderer.Outcome(game)
	}

	return nil
}

func (that *Console) handleBoard(_ context.Context, _ []string) error {
	that.renderer.Board(that.game.Board)
	return nil
}

func (that *Console) handleHelp(_ context.Context, _ []string) error {
	that.renderer.Message("%s", helpText)
	return nil
}

func (that *Console) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

// Game returns the game in progress.
func (that *Console) Game() *entity.Game {
	return that.game
}

// parseAction accepts "<row> <col>" or a single cell number 1-9 counted row by row.
func parseAction(args []string) (tictactoe.Action, error) {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return tictactoe.Action{}, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidInput, arg)
		}
		numbers = append(numbers, n)
	}

	switch len(numbers) {
	case 1:
		if numbers[0] < 1 || numbers[0] > tictactoe.Size {
			return tictactoe.Action{}, fmt.Errorf("%w: cell must be 1-9", apperror.ErrInvalidInput)
		}
		return tictactoe.ActionFromIndex(numbers[0] - 1), nil
	case 2:
		return tictactoe.Action{Row: numbers[0], Col: numbers[1]}, nil
	default:
		return tictactoe.Action{}, fmt.Errorf("%w: expected <row> <col>", apperror.ErrInvalidInput)
	}
}

// botReply finds the cell the bot filled in answer to played.
func botReply(before, after tictactoe.Board, played tictactoe.Action) (tictactoe.Action, bool) {
	for i := range after {
		action := tictactoe.ActionFromIndex(i)
		if action != played && before[i] == tictactoe.Empty && after[i] != tictactoe.Empty {
			return action, true
		}
	}

	return tictactoe.Action{}, false
}

func isRecoverable(err error) bool {
	return errors.Is(err, tictactoe.ErrIllegalMove) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrInvalidInput) ||
		errors.Is(err, apperror.ErrUnknownCommand)
}
