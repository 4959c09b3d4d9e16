package apperror

import "errors"

var (
	ErrMatchFinished      = errors.New("match is already finished")
	ErrMatchIsNotStarted  = errors.New("match is not started")
	ErrNotInMatch         = errors.New("player is not part of a match")
	ErrMatchAlreadyFull   = errors.New("match already has two players")
	ErrUnknownMatchStatus = errors.New("unknown match status")
)
