package auth

import "errors"

var (
	InvalidTransitionErr = errors.New("invalid state transition")
)
