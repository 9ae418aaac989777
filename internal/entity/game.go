package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string          `json:"id"`
	Board   tictactoe.Board `json:"board"`
	Winner  tictactoe.Cell  `json:"winner"`
	Status  string          `json:"status"`
	Turn    tictactoe.Cell  `json:"player_turn"`
	Players []*Player       `json:"players,omitempty"`
}

// NewGame creates a game starting from the given position.
func NewGame(id string, board tictactoe.Board, players ...*Player) (*Game, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game := &Game{
		ID:      id,
		Board:   board,
		Players: players,
	}
	game.UpdateGameState()

	return game, nil
}

func (that *Game) UpdateGameState() {
	winner, ok := tictactoe.Winner(that.Board)

	switch {
	// one player wins
	case ok:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	// tie
	case tictactoe.IsTerminal(that.Board):
		that.Winner = tictactoe.Empty
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = tictactoe.PlayerToMove(that.Board)
	}
}

func (that *Game) MakeTurn(playerMark tictactoe.Cell, action tictactoe.Action) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.ApplyMove(that.Board, action)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsTie reports a finished game without a winner.
func (that *Game) IsTie() bool {
	return that.IsFinished() && that.Winner == tictactoe.Empty
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return nil, false
}

func (that *Game) PlayerByMark(mark tictactoe.Cell) (*Player, bool) {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player, true
		}
	}

	return nil, false
}

// CurrentPlayer returns the player whose mark is to move.
func (that *Game) CurrentPlayer() (*Player, bool) {
	if !that.IsOngoing() {
		return nil, false
	}

	return that.PlayerByMark(that.Turn)
}
