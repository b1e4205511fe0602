package thera

import "math/bits"

// Square represents a board position (0-63), a1=0 .. h8=63.
type Square int

const NoSquare Square = -1

// SquareOf builds a square index from file (0=a) and rank (0=1).
func SquareOf(file, rank int) Square { return Square(rank*8 + file) }

// File returns the file of the square (0=a .. 7=h).
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the rank of the square (0 .. 7).
func (sq Square) Rank() int { return int(sq) / 8 }

// String returns the algebraic name of the square (e.g. "e4").
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareFromString parses an algebraic square name ("a1".."h8").
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errInvalid("square %q: must be two characters", s)
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errInvalid("square %q: out of range", s)
	}
	return SquareOf(int(file-'a'), int(rank-'1')), nil
}

// Bitboard is a set of board squares backed by a 64-bit occupancy mask.
// Bitwise operators combine bitboards directly; enumeration is O(1) per
// element via Pop/First without any auxiliary piece list.
type Bitboard uint64

func squareBit(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

// Has reports whether the square is in the set.
func (bb Bitboard) Has(sq Square) bool { return bb>>uint(sq)&1 != 0 }

// Set adds the square to the set.
func (bb *Bitboard) Set(sq Square) { *bb |= squareBit(sq) }

// Clear removes the square from the set.
func (bb *Bitboard) Clear(sq Square) { *bb &^= squareBit(sq) }

// Count returns the number of squares in the set.
func (bb Bitboard) Count() int { return bits.OnesCount64(uint64(bb)) }

// First returns the lowest square in the set, or NoSquare if empty.
func (bb Bitboard) First() Square {
	if bb == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(bb)))
}

// Last returns the highest square in the set, or NoSquare if empty.
func (bb Bitboard) Last() Square {
	if bb == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(bb)))
}

// Pop removes and returns the lowest square in the set.
// The set must be non-empty.
func (bb *Bitboard) Pop() Square {
	sq := Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}

// Squares returns the set's members in ascending order.
func (bb Bitboard) Squares() []Square {
	out := make([]Square, 0, bb.Count())
	for b := bb; b != 0; {
		out = append(out, b.Pop())
	}
	return out
}
