package auth

import "errors"

var (
	FlowFinishedErr  = errors.New("callback flow already finished")
	StateMismatchErr = errors.New("state issued to another browser or provider")
)
