package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	colorX     = "9"
	colorO     = "12"
	colorError = "1"
)

// Renderer writes boards and messages to a terminal.
type Renderer struct {
	output *termenv.Output
}

// NewRenderer styles output according to the terminal w is attached to. With noColor set,
// or when w is not a terminal, everything is written as plain text.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	return &Renderer{output: termenv.NewOutput(w, opts...)}
}

// Board draws the board as a labelled 3x3 grid.
func (that *Renderer) Board(board tictactoe.Board) {
	var sb strings.Builder

	sb.WriteString("    0   1   2\n")
	for row := range 3 {
		fmt.Fprintf(&sb, "%d   ", row)
		for col := range 3 {
			if col > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(that.cell(board.At(tictactoe.Action{Row: row, Col: col})))
		}
		sb.WriteString("\n")
		if row < 2 {
			sb.WriteString("   ---+---+---\n")
		}
	}

	fmt.Fprint(that.output, sb.String())
}

// Outcome reports how a finished game ended.
func (that *Renderer) Outcome(game *entity.Game) {
	if game.IsTie() {
		that.Message("draw")
		return
	}

	that.Message("%s wins", that.cell(game.Winner))
}

func (that *Renderer) Ply(mark tictactoe.Cell, action tictactoe.Action) {
	that.Message("%s plays %s", that.cell(mark), action)
}

func (that *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(that.output, format+"\n", args...)
}

func (that *Renderer) Error(err error) {
	fmt.Fprintln(that.output, that.output.String("error: "+err.Error()).Foreground(that.output.Color(colorError)))
}

func (that *Renderer) cell(mark tictactoe.Cell) string {
	style := that.output.String(mark.String())

	switch mark {
	case tictactoe.X:
		return style.Foreground(that.output.Color(colorX)).Bold().String()
	case tictactoe.O:
		return style.Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return style.Faint().String()
	}
}
