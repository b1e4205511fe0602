package thera

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument tags recoverable failures caused by malformed
// external input (FEN text, move notation). Match with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoHistory is returned by RewindMove when no move has been applied.
var ErrNoHistory = errors.New("no move to undo")

func errInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// strictChecks gates internal consistency assertions. Off by default:
// the move generation hot path runs unchecked. Tests switch it on.
var strictChecks bool

// SetStrictChecks toggles internal invariant verification. When enabled,
// board mutations verify mailbox/bitboard consistency and move
// application asserts the mover's king is not left attacked; violations
// panic. Not safe to toggle while a Board is in use.
func SetStrictChecks(on bool) { strictChecks = on }
