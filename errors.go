package breadboard

import (
	"strconv"
)

// SimError is a fatal simulation error (spec §7): an instruction that could
// not be resolved or executed. It carries the 1-based source line number of
// the offending microcontroller instruction. Placement errors (spec §7.1)
// are deliberately *not* modeled as errors — AddComponent/AddCable just
// return false, matching how the teacher's Socket.PinOrNew never fails
// while Chip()'s wiring checks are hard errors.
type SimError struct {
	Line   int
	Reason string
	cause  error
}

func (e *SimError) Error() string {
	return "Line " + strconv.Itoa(e.Line) + " - " + e.Reason
}

// Cause lets github.com/pkg/errors.Cause reach the wrapped cause, if any.
func (e *SimError) Cause() error { return e.cause }

// Unwrap lets the standard errors package reach the wrapped cause.
func (e *SimError) Unwrap() error { return e.cause }

// simErr builds a *SimError with no further cause.
func simErr(line int, reason string) *SimError {
	return &SimError{Line: line, Reason: reason}
}

// simErrWrap builds a *SimError whose Reason also names a lower-level
// cause, the same layering as chip.go's errors.Wrap(err, pinName(...)).
func simErrWrap(line int, cause error, reason string) *SimError {
	return &SimError{Line: line, Reason: reason + ": " + cause.Error(), cause: cause}
}
