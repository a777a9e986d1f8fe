package engine

import "errors"

// ErrInvalidTransition is returned when a submit operation is called in a turn
// state that does not accept it. The match state is left untouched.
var ErrInvalidTransition = errors.New("invalid turn state transition")
