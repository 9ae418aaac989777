package tictactoe

import (
	"fmt"
	"strings"
)

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Size is the number of cells on the board.
const Size = 9

// Board is a 3x3 grid stored row-major. It is a value type: every operation that
// produces a new position returns a copy.
type Board [Size]Cell

// Action is a (row, col) coordinate, each in [0, 2].
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	case Empty:
		return "."
	default:
		return fmt.Sprintf("Cell(%d)", uint8(that))
	}
}

// Opponent returns the other mark. Empty has no opponent and is returned as is.
func (that Cell) Opponent() Cell {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return that
	}
}

func (that Cell) valid() bool {
	return that <= O
}

// ParseCell converts a single symbol into a Cell.
func ParseCell(symbol string) (Cell, error) {
	switch symbol {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	case ".", "-", "_", " ", "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: unknown cell symbol %q", ErrInvalidState, symbol)
	}
}

// ActionFromIndex returns the action addressing the row-major cell index.
func ActionFromIndex(idx int) Action {
	return Action{Row: idx / 3, Col: idx % 3}
}

// Index returns the row-major cell index of the action.
func (that Action) Index() int {
	return that.Row*3 + that.Col
}

// InBounds reports whether both coordinates are in [0, 2].
func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < 3 && that.Col >= 0 && that.Col < 3
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// At returns the cell addressed by an in-bounds action.
func (that Board) At(action Action) Cell {
	return that[action.Index()]
}

// Count returns how many cells hold the given value.
func (that Board) Count(cell Cell) int {
	n := 0
	for _, c := range that {
		if c == cell {
			n++
		}
	}

	return n
}

// String renders the board as three rows separated by '/', e.g. "XO./.X./..O".
func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(cell.String())
	}

	return sb.String()
}

// ParseBoard reads a board from nine cell symbols. Row separators ('/', '|', newlines)
// and spaces between rows are ignored, so the output of Board.String parses back.
func ParseBoard(s string) (Board, error) {
	var board Board

	cleaned := strings.NewReplacer("/", "", "|", "", "\n", "", "\r", "", "\t", "", " ", "").Replace(s)
	if len(cleaned) != Size {
		return board, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidState, Size, len(cleaned))
	}

	for i := range cleaned {
		cell, err := ParseCell(cleaned[i : i+1])
		if err != nil {
			return Board{}, err
		}
		board[i] = cell
	}

	return board, nil
}
