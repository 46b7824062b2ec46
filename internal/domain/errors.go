package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownState is matched by every UnknownStateError via errors.Is
var ErrUnknownState = errors.New("unknown state")

// UnknownStateError is returned when a state code is absent from a rate table
type UnknownStateError struct {
	State StateCode
	Table string // "interstate", "internal", or empty when raised while parsing
}

func (e *UnknownStateError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("state %q not found", string(e.State))
	}
	return fmt.Sprintf("state %q not found in %s rate table", string(e.State), e.Table)
}

// Is makes errors.Is(err, ErrUnknownState) hold
func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}
