package thera

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]Bitboard
var kingMoves [64]Bitboard

// Pawn attack masks: pawnAttacks[color][sq] gives the squares a pawn of
// 'color' attacks from 'sq'.
var pawnAttacks [2][64]Bitboard

// Precomputed rays for sliders. For each square and direction, the
// squares in that ray excluding the origin.
// Rook directions: 0=N, 1=S, 2=E, 3=W
var rookRays [64][4]Bitboard

// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
var bishopRays [64][4]Bitboard

// between[a][b] holds the squares strictly between a and b when they
// share a rank, file or diagonal; zero otherwise.
var between [64][64]Bitboard

// Masks and lookup tables for magic-like slider attacks (software pext).
var rookMask [64]Bitboard
var bishopMask [64]Bitboard
var rookAttTable [64][]Bitboard
var bishopAttTable [64][]Bitboard

func init() {
	initAttackTables()
	initRays()
	initBetween()
	initSliderTables()
}

// initAttackTables precomputes attack bitboards for knights, kings and pawns.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for _, off := range knightOffsets {
			r, f := rank+off[0], file+off[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightMoves[sq].Set(SquareOf(f, r))
			}
		}
		for _, off := range kingOffsets {
			r, f := rank+off[0], file+off[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				kingMoves[sq].Set(SquareOf(f, r))
			}
		}

		// White pawns attack upward, black pawns downward.
		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq].Set(SquareOf(file-1, rank+1))
			}
			if file < 7 {
				pawnAttacks[White][sq].Set(SquareOf(file+1, rank+1))
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq].Set(SquareOf(file-1, rank-1))
			}
			if file < 7 {
				pawnAttacks[Black][sq].Set(SquareOf(file+1, rank-1))
			}
		}
	}
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		for r := rank + 1; r < 8; r++ {
			rookRays[sq][0].Set(SquareOf(file, r)) // N
		}
		for r := rank - 1; r >= 0; r-- {
			rookRays[sq][1].Set(SquareOf(file, r)) // S
		}
		for f := file + 1; f < 8; f++ {
			rookRays[sq][2].Set(SquareOf(f, rank)) // E
		}
		for f := file - 1; f >= 0; f-- {
			rookRays[sq][3].Set(SquareOf(f, rank)) // W
		}

		for r, f := rank+1, file+1; r < 8 && f < 8; r, f = r+1, f+1 {
			bishopRays[sq][0].Set(SquareOf(f, r)) // NE
		}
		for r, f := rank+1, file-1; r < 8 && f >= 0; r, f = r+1, f-1 {
			bishopRays[sq][1].Set(SquareOf(f, r)) // NW
		}
		for r, f := rank-1, file+1; r >= 0 && f < 8; r, f = r-1, f+1 {
			bishopRays[sq][2].Set(SquareOf(f, r)) // SE
		}
		for r, f := rank-1, file-1; r >= 0 && f >= 0; r, f = r-1, f-1 {
			bishopRays[sq][3].Set(SquareOf(f, r)) // SW
		}
	}
}

// initBetween derives the between table from the rays: two squares on a
// common ray bound the segment rayFrom(a) minus rayFrom(b) minus b itself.
func initBetween() {
	for a := 0; a < 64; a++ {
		for d := 0; d < 4; d++ {
			for seg := rookRays[a][d]; seg != 0; {
				b := seg.Pop()
				between[a][b] = rookRays[a][d] &^ rookRays[b][d] &^ squareBit(b)
			}
			for seg := bishopRays[a][d]; seg != 0; {
				b := seg.Pop()
				between[a][b] = bishopRays[a][d] &^ bishopRays[b][d] &^ squareBit(b)
			}
		}
	}
}

// initSliderTables builds per-square occupancy masks and attack tables
// indexed by the pext of the relevant occupancy bits.
func initSliderTables() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		// Masks exclude edge squares: an edge blocker never changes the
		// attack set, so it need not participate in the index.
		var rm Bitboard
		for r := rank + 1; r < 7; r++ {
			rm.Set(SquareOf(file, r))
		}
		for r := rank - 1; r > 0; r-- {
			rm.Set(SquareOf(file, r))
		}
		for f := file + 1; f < 7; f++ {
			rm.Set(SquareOf(f, rank))
		}
		for f := file - 1; f > 0; f-- {
			rm.Set(SquareOf(f, rank))
		}
		rookMask[sq] = rm

		var bm Bitboard
		for r, f := rank+1, file+1; r < 7 && f < 7; r, f = r+1, f+1 {
			bm.Set(SquareOf(f, r))
		}
		for r, f := rank+1, file-1; r < 7 && f > 0; r, f = r+1, f-1 {
			bm.Set(SquareOf(f, r))
		}
		for r, f := rank-1, file+1; r > 0 && f < 7; r, f = r-1, f+1 {
			bm.Set(SquareOf(f, r))
		}
		for r, f := rank-1, file-1; r > 0 && f > 0; r, f = r-1, f-1 {
			bm.Set(SquareOf(f, r))
		}
		bishopMask[sq] = bm

		// Enumerate every blocker subset of the mask with software pdep.
		rookAttTable[sq] = make([]Bitboard, 1<<rm.Count())
		bishopAttTable[sq] = make([]Bitboard, 1<<bm.Count())
		for idx := range rookAttTable[sq] {
			occ := pdep(uint64(idx), uint64(rm))
			rookAttTable[sq][idx] = rookAttacksSlow(Square(sq), Bitboard(occ))
		}
		for idx := range bishopAttTable[sq] {
			occ := pdep(uint64(idx), uint64(bm))
			bishopAttTable[sq][idx] = bishopAttacksSlow(Square(sq), Bitboard(occ))
		}
	}
}

// software pext: extract bits of x at positions where mask has 1s,
// packed into the low bits of the result.
func pext(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>bit)&1 != 0 {
			res |= 1 << idx
		}
		idx++
	}
	return res
}

// software pdep: deposit the low bits of x into the 1 positions of mask.
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
	}
	return res
}

// rookAttacksSlow walks the four orthogonal rays, truncating each at its
// first blocker. Used only to seed the lookup tables.
func rookAttacksSlow(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for d := 0; d < 4; d++ {
		ray := rookRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first Square
			if d == 0 || d == 2 { // N, E increase square indices
				first = blockers.First()
			} else {
				first = blockers.Last()
			}
			ray &^= rookRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// bishopAttacksSlow is the diagonal analogue of rookAttacksSlow.
func bishopAttacksSlow(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for d := 0; d < 4; d++ {
		ray := bishopRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first Square
			if d == 0 || d == 1 { // NE, NW increase square indices
				first = blockers.First()
			} else {
				first = blockers.Last()
			}
			ray &^= bishopRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// RookAttacks returns the rook attack set from sq for the given occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	idx := pext(uint64(occ), uint64(rookMask[sq]))
	return rookAttTable[sq][idx]
}

// BishopAttacks returns the bishop attack set from sq for the given occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	idx := pext(uint64(occ), uint64(bishopMask[sq]))
	return bishopAttTable[sq][idx]
}

// QueenAttacks returns the queen attack set from sq for the given occupancy.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// IsSquareAttacked reports whether the given square is attacked by the
// given side in the current position. A square defended by an enemy
// piece counts as attacked regardless of what stands on it.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(sq, by, b.AllPieces())
}

// isSquareAttackedWithOcc is IsSquareAttacked against an explicit
// occupancy, letting callers test hypothetical positions (en passant
// legality) without mutating the board. Pieces absent from occ do not
// attack: an en passant capture removes a pawn that may itself be the
// checker.
func (b *Board) isSquareAttackedWithOcc(sq Square, by Color, occ Bitboard) bool {
	them := b.byType[int(by)]

	// A pawn of 'by' attacks sq iff a pawn of the other color on sq
	// would attack the pawn's square: use the reverse mask.
	if pawnAttacks[by.Opposite()][sq]&them[PieceTypePawn]&occ != 0 {
		return true
	}
	if knightMoves[sq]&them[PieceTypeKnight]&occ != 0 {
		return true
	}
	if kingMoves[sq]&them[PieceTypeKing]&occ != 0 {
		return true
	}
	rq := them[PieceTypeRook] | them[PieceTypeQueen]
	if rq != 0 && RookAttacks(sq, occ)&rq != 0 {
		return true
	}
	bq := them[PieceTypeBishop] | them[PieceTypeQueen]
	if bq != 0 && BishopAttacks(sq, occ)&bq != 0 {
		return true
	}
	return false
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(c Color) bool {
	ks := b.kingSquare(c)
	if ks == NoSquare {
		return false
	}
	return b.IsSquareAttacked(ks, c.Opposite())
}
