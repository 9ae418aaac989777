// Package minimax picks optimal tic-tac-toe moves by exhaustive minimax search with
// alpha-beta pruning. X is the maximizing side, O the minimizing side.
package minimax

import (
	"context"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// Result is the value of a node and the action that achieves it.
// OK is false when the node is terminal and no action applies.
type Result struct {
	Value  int
	Action tictactoe.Action
	OK     bool
}

// Stats counts the work done by a search.
type Stats struct {
	Nodes   int `json:"nodes"`
	Cutoffs int `json:"cutoffs"`
}

func (that *Stats) add(other Stats) {
	that.Nodes += other.Nodes
	that.Cutoffs += other.Cutoffs
}

// search carries the per-call settings and counters through the recursion.
type search struct {
	ctx     context.Context
	pruning bool
	stats   Stats
}

func newSearch(ctx context.Context, pruning bool) *search {
	return &search{ctx: ctx, pruning: pruning}
}

// stopped reports cancellation. A stopped search unwinds with partial results,
// the caller must check ctx.Err before using them.
func (that *search) stopped() bool {
	return that.ctx.Err() != nil
}

// BestAction returns the optimal action for the player to move, or false when the
// board is terminal. Among equally good actions the first in row-major order wins.
func BestAction(board tictactoe.Board) (tictactoe.Action, bool) {
	result := Search(board)

	return result.Action, result.OK
}

// Search runs a sequential alpha-beta search from the board and returns the root result.
func Search(board tictactoe.Board) Result {
	return root(newSearch(context.Background(), true), board)
}

func root(s *search, board tictactoe.Board) Result {
	if tictactoe.PlayerToMove(board) == tictactoe.X {
		return maxValue(s, board, negInf, posInf)
	}

	return minValue(s, board, negInf, posInf)
}

// maxValue evaluates a node where X is to move.
func maxValue(s *search, board tictactoe.Board, alpha, beta int) Result {
	s.stats.Nodes++

	if tictactoe.IsTerminal(board) {
		return Result{Value: tictactoe.Utility(board)}
	}

	best := Result{Value: negInf}
	for _, action := range tictactoe.LegalActions(board) {
		if s.stopped() {
			break
		}

		child, err := tictactoe.ApplyMove(board, action)
		if err != nil {
			// unreachable: LegalActions yields empty in-range cells only
			continue
		}

		value := minValue(s, child, alpha, beta).Value
		alpha = max(alpha, value)

		if value > best.Value {
			best = Result{Value: value, Action: action, OK: true}
		}

		if s.pruning && alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	return best
}

// minValue evaluates a node where O is to move.
func minValue(s *search, board tictactoe.Board, alpha, beta int) Result {
	s.stats.Nodes++

	if tictactoe.IsTerminal(board) {
		return Result{Value: tictactoe.Utility(board)}
	}

	best := Result{Value: posInf}
	for _, action := range tictactoe.LegalActions(board) {
		if s.stopped() {
			break
		}

		child, err := tictactoe.ApplyMove(board, action)
		if err != nil {
			// unreachable: LegalActions yields empty in-range cells only
			continue
		}

		value := maxValue(s, child, alpha, beta).Value
		beta = min(beta, value)

		if value < best.Value {
			best = Result{Value: value, Action: action, OK: true}
		}

		if s.pruning && alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	return best
}
