package entity

import "github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"

const (
	HumanKind = "human"
	BotKind   = "bot"
)

type Player struct {
	ID   string         `json:"id"`
	Mark tictactoe.Cell `json:"mark"`
	Kind string         `json:"kind"`
}

func NewHumanPlayer(id string, mark tictactoe.Cell) *Player {
	return &Player{ID: id, Mark: mark, Kind: HumanKind}
}

func NewBotPlayer(id string, mark tictactoe.Cell) *Player {
	return &Player{ID: id, Mark: mark, Kind: BotKind}
}

func (that *Player) IsBot() bool {
	return that.Kind == BotKind
}
