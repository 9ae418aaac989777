package tictactoe

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidState = errors.New("invalid board state")

	// winLines is scanned in order: both diagonals, rows top to bottom, columns left to right.
	winLines = [8][3]int{
		{0, 4, 8},
		{6, 4, 2},
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
	}
)

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

// PlayerToMove returns X when an even number of cells is occupied, O otherwise.
func PlayerToMove(board Board) Cell {
	if (Size-board.Count(Empty))%2 == 0 {
		return X
	}

	return O
}

// LegalActions returns every empty coordinate in row-major order. Search tie-breaks
// depend on this order.
func LegalActions(board Board) []Action {
	actions := make([]Action, 0, Size)
	for i, cell := range board {
		if cell == Empty {
			actions = append(actions, ActionFromIndex(i))
		}
	}

	return actions
}

// ApplyMove returns a copy of the board with the player to move placed on the action's cell.
func ApplyMove(board Board, action Action) (Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: %w: %s", ErrIllegalMove, ErrInvalidCell, action)
	}

	if board.At(action) != Empty {
		return board, fmt.Errorf("%w: %w: %s", ErrIllegalMove, ErrCellOccupied, action)
	}

	next := board
	next[action.Index()] = PlayerToMove(board)

	return next, nil
}

// Winner returns the mark holding the first complete line in scan order.
func Winner(board Board) (Cell, bool) {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != Empty && a == b && b == c {
			return a, true
		}
	}

	return Empty, false
}

// IsTerminal reports whether somebody has won or the board is full.
func IsTerminal(board Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}

	for _, cell := range board {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Utility is +1 if X has won, -1 if O has won and 0 otherwise.
// It is only meaningful for terminal boards.
func Utility(board Board) int {
	winner, _ := Winner(board)

	switch winner {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// Validate checks that the board could occur in a real game.
func Validate(board Board) error {
	for i, cell := range board {
		if !cell.valid() {
			return fmt.Errorf("%w: cell %d holds unknown value %d", ErrInvalidState, i, uint8(cell))
		}
	}

	xCount, oCount := board.Count(X), board.Count(O)
	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidState, xCount, oCount)
	}

	var xWins, oWins bool
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a == Empty || a != b || b != c {
			continue
		}
		if a == X {
			xWins = true
		} else {
			oWins = true
		}
	}

	if xWins && oWins {
		return fmt.Errorf("%w: both players have three in a row", ErrInvalidState)
	}

	return nil
}
