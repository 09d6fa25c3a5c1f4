package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrWrongPhase    = errors.New("action not allowed in current phase")
	ErrQuitRequested = errors.New("quit requested")
)
