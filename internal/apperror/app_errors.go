package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidInput   = errors.New("invalid input")
)
