package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()

	board, err := ParseBoard(s)
	require.NoError(t, err)

	return board
}

// reachableBoards walks every position reachable from the empty board.
func reachableBoards() map[Board]struct{} {
	seen := make(map[Board]struct{})

	var walk func(board Board)
	walk = func(board Board) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		if IsTerminal(board) {
			return
		}

		for _, action := range LegalActions(board) {
			next, err := ApplyMove(board, action)
			if err != nil {
				panic(err)
			}
			walk(next)
		}
	}
	walk(InitialState())

	return seen
}

func TestInitialState(t *testing.T) {
	// When: the initial state is created
	board := InitialState()

	// Then: every cell is empty and X moves first
	assert.Equal(t, Size, board.Count(Empty))
	assert.Equal(t, X, PlayerToMove(board))
	assert.Len(t, LegalActions(board), Size)
	assert.False(t, IsTerminal(board))
}

func TestPlayerToMove(t *testing.T) {
	t.Run("Alternates with every move starting from X", func(t *testing.T) {
		// Given: the empty board
		board := InitialState()
		expected := X

		// When: the cells are filled one by one in row-major order
		for i := 0; i < Size; i++ {
			// Then: the mover alternates X, O, X, ...
			require.Equal(t, expected, PlayerToMove(board), "ply %d", i)

			next, err := ApplyMove(board, ActionFromIndex(i))
			require.NoError(t, err)

			board = next
			expected = expected.Opponent()
		}
	})

	t.Run("Depends only on the number of occupied cells", func(t *testing.T) {
		// Given: boards with an odd and an even number of marks
		odd := mustParse(t, "X../.../...")
		even := mustParse(t, "X../.O./...")

		// Then: O moves on odd counts, X on even counts
		assert.Equal(t, O, PlayerToMove(odd))
		assert.Equal(t, X, PlayerToMove(even))
	})
}

func TestLegalActions(t *testing.T) {
	t.Run("Lists empty cells in row-major order", func(t *testing.T) {
		// Given: a board with a few occupied cells
		board := mustParse(t, "X.O/.X./O..")

		// When: legal actions are enumerated
		actions := LegalActions(board)

		// Then: only empty cells are returned, row by row
		expected := []Action{
			{Row: 0, Col: 1},
			{Row: 1, Col: 0},
			{Row: 1, Col: 2},
			{Row: 2, Col: 1},
			{Row: 2, Col: 2},
		}
		assert.Equal(t, expected, actions)
	})

	t.Run("Returns nothing on a full board", func(t *testing.T) {
		// Given: a full board
		board := mustParse(t, "XOX/XOO/OXX")

		// Then: there are no legal actions
		assert.Empty(t, LegalActions(board))
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Places the mark of the player to move", func(t *testing.T) {
		// Given: a board where O is to move
		board := mustParse(t, "X../.../...")

		// When: O plays the center
		next, err := ApplyMove(board, Action{Row: 1, Col: 1})

		// Then: the center holds O
		require.NoError(t, err)
		assert.Equal(t, mustParse(t, "X../.O./..."), next)
	})

	t.Run("Does not mutate the input board", func(t *testing.T) {
		// Given: a board and a copy of it
		board := mustParse(t, "X../.../...")
		original := board

		// When: a move is applied
		_, err := ApplyMove(board, Action{Row: 2, Col: 2})
		require.NoError(t, err)

		// Then: the input is unchanged
		assert.Equal(t, original, board)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board where (0,0) is taken
		board := mustParse(t, "X../.../...")

		// When: O tries to play on the same cell
		next, err := ApplyMove(board, Action{Row: 0, Col: 0})

		// Then: an illegal move error is returned and the board is unchanged
		require.ErrorIs(t, err, ErrIllegalMove)
		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, board, next)
	})

	t.Run("Error on out of range coordinates", func(t *testing.T) {
		// Given: the empty board
		board := InitialState()

		for _, action := range []Action{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 3, Col: 0}, {Row: 0, Col: 3}, {Row: 5, Col: 5}} {
			// When: an out of range action is applied
			_, err := ApplyMove(board, action)

			// Then: an illegal move error is returned
			require.ErrorIs(t, err, ErrIllegalMove, "action %s", action)
			require.ErrorIs(t, err, ErrInvalidCell, "action %s", action)
		}
	})
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		winner Cell
		ok     bool
	}{
		{name: "Row win for X", board: "XXX/OO./...", winner: X, ok: true},
		{name: "Column win for O", board: "XOX/.O./XO.", winner: O, ok: true},
		{name: "Main diagonal for X", board: "XO./OX./..X", winner: X, ok: true},
		{name: "Anti diagonal for O", board: "XXO/XO./O..", winner: O, ok: true},
		{name: "Ongoing game", board: "XO./.X./..O", winner: Empty, ok: false},
		{name: "Full board draw", board: "XOX/XOO/OXX", winner: Empty, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: the winner is computed
			winner, ok := Winner(mustParse(t, tt.board))

			// Then: it matches the expectation
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.winner, winner)
		})
	}

	t.Run("Rows are scanned top to bottom", func(t *testing.T) {
		// Given: a malformed board where X holds the top row and O the bottom row
		board := mustParse(t, "XXX/.../OOO")

		// When: the winner is computed
		winner, ok := Winner(board)

		// Then: the first line in scan order decides
		require.True(t, ok)
		assert.Equal(t, X, winner)
	})

	t.Run("Columns are scanned left to right", func(t *testing.T) {
		// Given: a malformed board where O holds the left column and X the right one
		board := mustParse(t, "O.X/O.X/O.X")

		winner, ok := Winner(board)

		require.True(t, ok)
		assert.Equal(t, O, winner)
	})
}

func TestIsTerminalAndUtility(t *testing.T) {
	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := mustParse(t, "XOX/XOO/OXX")

		// Then: the game is over, there is no winner and the utility is zero
		_, ok := Winner(board)
		assert.True(t, IsTerminal(board))
		assert.False(t, ok)
		assert.Equal(t, 0, Utility(board))
	})

	t.Run("X win has utility +1", func(t *testing.T) {
		board := mustParse(t, "XXX/OO./...")

		assert.True(t, IsTerminal(board))
		assert.Equal(t, 1, Utility(board))
	})

	t.Run("O win has utility -1", func(t *testing.T) {
		board := mustParse(t, "XX./OOO/X..")

		assert.True(t, IsTerminal(board))
		assert.Equal(t, -1, Utility(board))
	})

	t.Run("Ongoing board is not terminal", func(t *testing.T) {
		board := mustParse(t, "XO./.../...")

		assert.False(t, IsTerminal(board))
		assert.Equal(t, 0, Utility(board))
	})
}

func TestRulesOverReachablePositions(t *testing.T) {
	// Given: every position reachable from the empty board
	boards := reachableBoards()

	// Then: the classic number of legal tic-tac-toe positions is found
	require.Len(t, boards, 5478)

	for board := range boards {
		require.NoError(t, Validate(board), board.String())

		winner, hasWinner := Winner(board)
		legal := LegalActions(board)

		// terminal iff there is a winner or nothing left to play
		require.Equal(t, hasWinner || len(legal) == 0, IsTerminal(board), board.String())

		switch {
		case hasWinner && winner == X:
			require.Equal(t, 1, Utility(board))
		case hasWinner && winner == O:
			require.Equal(t, -1, Utility(board))
		default:
			require.Equal(t, 0, Utility(board))
		}

		occupied := Size - board.Count(Empty)
		for _, action := range legal {
			next, err := ApplyMove(board, action)
			require.NoError(t, err)

			// one more occupied cell, the other player to move, and the cell is gone from the legal set
			require.Equal(t, occupied+1, Size-next.Count(Empty))
			require.Equal(t, PlayerToMove(board).Opponent(), PlayerToMove(next))
			require.NotContains(t, LegalActions(next), action)
		}

		for i := 0; i < Size; i++ {
			action := ActionFromIndex(i)
			if board.At(action) == Empty {
				continue
			}

			_, err := ApplyMove(board, action)
			require.ErrorIs(t, err, ErrIllegalMove)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("Accepts the empty board", func(t *testing.T) {
		assert.NoError(t, Validate(InitialState()))
	})

	t.Run("Rejects O moving first", func(t *testing.T) {
		// Given: a board with a single O mark
		board := mustParse(t, "O../.../...")

		// When: the board is validated
		err := Validate(board)

		// Then: ErrInvalidState is returned
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "0 X marks against 1 O marks")
	})

	t.Run("Rejects X moving twice", func(t *testing.T) {
		err := Validate(mustParse(t, "XX./.../..."))

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Rejects two winners", func(t *testing.T) {
		err := Validate(mustParse(t, "XXX/OOO/..."))

		require.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "both players")
	})

	t.Run("Rejects unknown cell values", func(t *testing.T) {
		board := InitialState()
		board[4] = Cell(7)

		err := Validate(board)

		require.ErrorIs(t, err, ErrInvalidState)
	})
}
