package thera

// MoveGenerator produces fully legal moves for the side to move. It owns
// reusable scratch state (the move buffer, the enemy attack map, and the
// pin lines), so one generator serves a whole traversal without per-call
// allocation. A MoveGenerator is not safe for concurrent use; give each
// goroutine its own.
type MoveGenerator struct {
	moves []Move

	// Attack data for the position most recently analyzed.
	attacked    Bitboard // every square the opponent attacks or defends
	pinned      Bitboard // own pieces pinned to the king
	pinLine     [64]Bitboard
	checkMask   Bitboard
	inCheck     bool
	doubleCheck bool
}

// NewMoveGenerator returns a generator with a preallocated move buffer.
func NewMoveGenerator() *MoveGenerator {
	return &MoveGenerator{moves: make([]Move, 0, 128)}
}

// AttackedSquares returns the enemy attack map computed by the last
// GenerateAllMoves or GenerateAttackData call. Squares occupied by enemy
// pieces that are defended are included; the map is computed with the
// friendly king removed from the occupancy so that ray attacks extend
// through it.
func (g *MoveGenerator) AttackedSquares() Bitboard { return g.attacked }

// PinnedPieces returns the friendly pieces that were absolutely pinned
// in the last analyzed position.
func (g *MoveGenerator) PinnedPieces() Bitboard { return g.pinned }

// InCheck reports whether the side to move was in check in the last
// analyzed position.
func (g *MoveGenerator) InCheck() bool { return g.inCheck }

// GenerateAttackData recomputes the enemy attack map, the check state
// and the pin lines for the board's side to move without generating any
// moves.
func (g *MoveGenerator) GenerateAttackData(b *Board) {
	g.computeState(b)
}

// computeState fills the generator's attack map, check mask and pin
// lines for b's side to move.
func (g *MoveGenerator) computeState(b *Board) {
	side := b.sideToMove
	us := b.byType[int(side)]
	them := b.byType[int(side.Opposite())]
	occ := b.AllPieces()
	ksq := b.kingSquare(side)

	// Enemy attack map. The friendly king is lifted off the board so a
	// checking slider's ray covers the squares behind the king too;
	// those are not legal evasion targets.
	occNoKing := occ &^ us[PieceTypeKing]
	attacked := Bitboard(0)
	for pawns := them[PieceTypePawn]; pawns != 0; {
		attacked |= pawnAttacks[side.Opposite()][pawns.Pop()]
	}
	for knights := them[PieceTypeKnight]; knights != 0; {
		attacked |= knightMoves[knights.Pop()]
	}
	for bishops := them[PieceTypeBishop] | them[PieceTypeQueen]; bishops != 0; {
		attacked |= BishopAttacks(bishops.Pop(), occNoKing)
	}
	for rooks := them[PieceTypeRook] | them[PieceTypeQueen]; rooks != 0; {
		attacked |= RookAttacks(rooks.Pop(), occNoKing)
	}
	if eks := them[PieceTypeKing].First(); eks != NoSquare {
		attacked |= kingMoves[eks]
	}
	g.attacked = attacked

	g.pinned = 0
	g.checkMask = 0
	g.inCheck = false
	g.doubleCheck = false
	if ksq == NoSquare {
		if strictChecks {
			panic("thera: move generation without a side-to-move king")
		}
		return
	}

	// Checkers of the king.
	checkers := pawnAttacks[side][ksq] & them[PieceTypePawn]
	checkers |= knightMoves[ksq] & them[PieceTypeKnight]
	checkers |= BishopAttacks(ksq, occ) & (them[PieceTypeBishop] | them[PieceTypeQueen])
	checkers |= RookAttacks(ksq, occ) & (them[PieceTypeRook] | them[PieceTypeQueen])

	g.inCheck = checkers != 0
	g.doubleCheck = checkers != 0 && checkers&(checkers-1) != 0
	if g.inCheck && !g.doubleCheck {
		// Single check: non-king moves must capture the checker or
		// block the checking ray.
		c := checkers.First()
		g.checkMask = between[ksq][c] | squareBit(c)
	}

	// Pins: on each ray from the king, the first friendly piece is
	// pinned when the next piece beyond it is an enemy slider moving
	// along that ray. The pin line runs from the king to the pinner,
	// so the pinned piece may still slide along it or capture the pinner.
	ownOcc := b.occupancy[int(side)]
	for d := 0; d < 4; d++ {
		g.scanPin(ksq, &rookRays, d, d == 0 || d == 2,
			them[PieceTypeRook]|them[PieceTypeQueen], occ, ownOcc)
		g.scanPin(ksq, &bishopRays, d, d == 0 || d == 1,
			them[PieceTypeBishop]|them[PieceTypeQueen], occ, ownOcc)
	}
}

// scanPin inspects one ray from the king for an absolute pin. ascending
// tells whether square indices grow along the ray, which decides whether
// the first blocker is the lowest or highest set bit.
func (g *MoveGenerator) scanPin(ksq Square, rays *[64][4]Bitboard, d int, ascending bool, sliders, occ, ownOcc Bitboard) {
	blockers := rays[ksq][d] & occ
	if blockers == 0 {
		return
	}
	var first Square
	if ascending {
		first = blockers.First()
	} else {
		first = blockers.Last()
	}
	if !ownOcc.Has(first) {
		return
	}
	beyond := rays[first][d] & occ
	if beyond == 0 {
		return
	}
	var next Square
	if ascending {
		next = beyond.First()
	} else {
		next = beyond.Last()
	}
	if !sliders.Has(next) {
		return
	}
	g.pinned.Set(first)
	g.pinLine[first] = between[ksq][next] | squareBit(next)
}

// allowed reports whether a non-king move from 'from' to 'to' survives
// the current check and pin restrictions.
func (g *MoveGenerator) allowed(from, to Square) bool {
	if g.inCheck && !g.checkMask.Has(to) {
		return false
	}
	if g.pinned.Has(from) && !g.pinLine[from].Has(to) {
		return false
	}
	return true
}

// GenerateAllMoves returns every legal move for b's side to move. The
// returned slice aliases the generator's internal buffer and is valid
// until the next generation call.
func (g *MoveGenerator) GenerateAllMoves(b *Board) []Move {
	g.moves = g.moves[:0]
	g.computeState(b)

	side := b.sideToMove
	us := b.byType[int(side)]
	ownOcc := b.occupancy[int(side)]
	oppOcc := b.occupancy[int(side.Opposite())]
	allOcc := ownOcc | oppOcc

	g.generateKingMoves(b, side, ownOcc, oppOcc)
	if g.doubleCheck {
		// Only the king may move out of a double check.
		return g.moves
	}

	g.generatePawnMoves(b, side, oppOcc, allOcc)

	for knights := us[PieceTypeKnight] &^ g.pinned; knights != 0; {
		// A pinned knight can never stay on its pin line.
		from := knights.Pop()
		g.emitTargets(b, from, knightMoves[from]&^ownOcc, oppOcc)
	}
	for bishops := us[PieceTypeBishop]; bishops != 0; {
		from := bishops.Pop()
		g.emitTargets(b, from, BishopAttacks(from, allOcc)&^ownOcc, oppOcc)
	}
	for rooks := us[PieceTypeRook]; rooks != 0; {
		from := rooks.Pop()
		g.emitTargets(b, from, RookAttacks(from, allOcc)&^ownOcc, oppOcc)
	}
	for queens := us[PieceTypeQueen]; queens != 0; {
		from := queens.Pop()
		g.emitTargets(b, from, QueenAttacks(from, allOcc)&^ownOcc, oppOcc)
	}

	return g.moves
}

// emitTargets appends one move per target square, applying the check and
// pin restrictions and reading any captured piece off the board.
func (g *MoveGenerator) emitTargets(b *Board, from Square, targets, oppOcc Bitboard) {
	moved := b.pieces[int(from)]
	if g.inCheck {
		targets &= g.checkMask
	}
	if g.pinned.Has(from) {
		targets &= g.pinLine[from]
	}
	for targets != 0 {
		to := targets.Pop()
		captured := NoPiece
		if oppOcc.Has(to) {
			captured = b.pieces[int(to)]
		}
		g.moves = append(g.moves, NewMove(from, to, moved, captured, NoPiece, FlagNone))
	}
}

// promotionPieces lists promotion targets in conventional Q R B N order.
var promotionPieces = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// emitPawnMove appends a pawn move, expanding promotions to all four
// target pieces.
func (g *MoveGenerator) emitPawnMove(side Color, from, to Square, moved, captured Piece, flag uint8) {
	if to.Rank() == 0 || to.Rank() == 7 {
		for _, pt := range promotionPieces {
			g.moves = append(g.moves, NewMove(from, to, moved, captured, PieceFromType(side, pt), FlagNone))
		}
		return
	}
	g.moves = append(g.moves, NewMove(from, to, moved, captured, NoPiece, flag))
}

func (g *MoveGenerator) generatePawnMoves(b *Board, side Color, oppOcc, allOcc Bitboard) {
	push := Square(8)
	startRank := 1
	if side == Black {
		push = -8
		startRank = 6
	}
	ksq := b.kingSquare(side)
	them := side.Opposite()

	for pawns := b.byType[int(side)][PieceTypePawn]; pawns != 0; {
		from := pawns.Pop()
		moved := b.pieces[int(from)]

		one := from + push
		if one >= 0 && one < 64 && !allOcc.Has(one) {
			if g.allowed(from, one) {
				g.emitPawnMove(side, from, one, moved, NoPiece, FlagNone)
			}
			if from.Rank() == startRank {
				two := one + push
				if !allOcc.Has(two) && g.allowed(from, two) {
					g.emitPawnMove(side, from, two, moved, NoPiece, FlagDoublePush)
				}
			}
		}

		caps := pawnAttacks[side][from]
		for targets := caps & oppOcc; targets != 0; {
			to := targets.Pop()
			if !g.allowed(from, to) {
				continue
			}
			g.emitPawnMove(side, from, to, moved, b.pieces[int(to)], FlagNone)
		}

		// En passant. The capture empties two squares and fills one, a
		// shape no mask covers (the classic failure is a horizontal
		// discovered check through both vanished pawns), so legality is
		// checked against the simulated occupancy directly.
		ep := b.enPassantSquare
		if ep == NoSquare || !caps.Has(ep) || ksq == NoSquare {
			continue
		}
		if g.pinned.Has(from) && !g.pinLine[from].Has(ep) {
			continue
		}
		capSq := b.EnPassantCaptureSquare()
		occp := allOcc &^ squareBit(from) &^ squareBit(capSq)
		occp |= squareBit(ep)
		if b.isSquareAttackedWithOcc(ksq, them, occp) {
			continue
		}
		captured := b.pieces[int(capSq)]
		g.moves = append(g.moves, NewMove(from, ep, moved, captured, NoPiece, FlagEnPassant))
	}
}

func (g *MoveGenerator) generateKingMoves(b *Board, side Color, ownOcc, oppOcc Bitboard) {
	from := b.kingSquare(side)
	if from == NoSquare {
		return
	}
	moved := b.pieces[int(from)]

	// The attack map already extends checking rays past the king, so a
	// plain mask test decides evasion legality.
	for targets := kingMoves[from] &^ ownOcc &^ g.attacked; targets != 0; {
		to := targets.Pop()
		captured := NoPiece
		if oppOcc.Has(to) {
			captured = b.pieces[int(to)]
		}
		g.moves = append(g.moves, NewMove(from, to, moved, captured, NoPiece, FlagNone))
	}

	if g.inCheck {
		return
	}

	// Castling: rights present, path empty, the rook on its origin
	// square, and neither transit square attacked.
	if side == White {
		if b.castlingRights&CastlingWhiteK != 0 &&
			b.pieces[5] == NoPiece && b.pieces[6] == NoPiece && b.pieces[7] == WhiteRook &&
			!g.attacked.Has(5) && !g.attacked.Has(6) {
			g.moves = append(g.moves, NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.castlingRights&CastlingWhiteQ != 0 &&
			b.pieces[1] == NoPiece && b.pieces[2] == NoPiece && b.pieces[3] == NoPiece && b.pieces[0] == WhiteRook &&
			!g.attacked.Has(3) && !g.attacked.Has(2) {
			g.moves = append(g.moves, NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
	} else {
		if b.castlingRights&CastlingBlackK != 0 &&
			b.pieces[61] == NoPiece && b.pieces[62] == NoPiece && b.pieces[63] == BlackRook &&
			!g.attacked.Has(61) && !g.attacked.Has(62) {
			g.moves = append(g.moves, NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.castlingRights&CastlingBlackQ != 0 &&
			b.pieces[57] == NoPiece && b.pieces[58] == NoPiece && b.pieces[59] == NoPiece && b.pieces[56] == BlackRook &&
			!g.attacked.Has(59) && !g.attacked.Has(58) {
			g.moves = append(g.moves, NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
	}
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (g *MoveGenerator) HasLegalMoves(b *Board) bool {
	return len(g.GenerateAllMoves(b)) > 0
}

// ResolveMove matches a partially specified move (typically from
// ParseMove) against the legal move list and returns the fully encoded
// equivalent. ok is false when no legal move matches.
func (g *MoveGenerator) ResolveMove(b *Board, partial Move) (Move, bool) {
	for _, m := range g.GenerateAllMoves(b) {
		if SameBaseMove(m, partial) {
			return m, true
		}
	}
	return 0, false
}

// LegalMoves returns a freshly allocated slice of all legal moves.
// Convenience for one-shot callers; traversals should hold a
// MoveGenerator and reuse its buffer.
func LegalMoves(b *Board) []Move {
	g := NewMoveGenerator()
	moves := g.GenerateAllMoves(b)
	out := make([]Move, len(moves))
	copy(out, moves)
	return out
}
