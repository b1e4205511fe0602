package thera

// undoState holds the minimal state needed to invert one applied move.
type undoState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
}

// epCaptureSquare returns the square of the pawn removed by an en passant
// capture landing on to, given the capturing side.
func epCaptureSquare(to Square, mover Color) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

// ApplyMove applies a legal move to the board and pushes an undo record.
// It relocates the mover, removes any captured piece (for en passant the
// captured pawn sits behind the destination), relocates the paired rook
// for castling, substitutes the promotion piece, maintains castling
// rights, the en passant target, both clocks and the Zobrist key, and
// flips the side to move. Legality is the caller's responsibility; in
// strict mode a move leaving the mover's king attacked panics.
func (b *Board) ApplyMove(m Move) {
	st := undoState{
		move:          m,
		captured:      NoPiece,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
	}

	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	mover := b.sideToMove

	// Retire the previous en passant target.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	// Captures. The board content is authoritative for what is removed.
	if m.IsEnPassant() {
		st.captured = b.removePiece(epCaptureSquare(to, mover))
	} else if b.pieces[int(to)] != NoPiece {
		st.captured = b.removePiece(to)
	}

	// Relocate the mover, substituting the promotion piece.
	b.removePiece(from)
	if promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, moved)
	}

	// Paired rook relocation for castling.
	if rookFrom, rookTo, ok := m.RookMove(); ok {
		rook := b.removePiece(rookFrom)
		b.addPiece(rookTo, rook)
	}

	// Castling rights: revoked when the king moves, when a rook's origin
	// square is vacated, or when a rook's origin square is captured on.
	newCR := b.castlingRights
	switch moved {
	case WhiteKing:
		newCR &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		newCR &^= CastlingBlackK | CastlingBlackQ
	case WhiteRook:
		if from == 0 {
			newCR &^= CastlingWhiteQ
		} else if from == 7 {
			newCR &^= CastlingWhiteK
		}
	case BlackRook:
		if from == 56 {
			newCR &^= CastlingBlackQ
		} else if from == 63 {
			newCR &^= CastlingBlackK
		}
	}
	if st.captured != NoPiece && st.captured.Type() == PieceTypeRook {
		switch to {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if newCR != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(newCR)]
		b.castlingRights = newCR
	}

	// A double pawn push creates the next move's en passant target.
	if moved.Type() == PieceTypePawn && (to-from == 16 || from-to == 16) {
		ep := (from + to) / 2
		b.enPassantSquare = ep
		b.zobristKey ^= zobristEnPassant[ep.File()]
	}

	if moved.Type() == PieceTypePawn || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if mover == Black {
		b.fullmoveNumber++
	}

	b.sideToMove = mover.Opposite()
	b.zobristKey ^= zobristSide

	b.history = append(b.history, st)

	if strictChecks {
		b.checkConsistent("ApplyMove")
		if ks := b.kingSquare(mover); ks != NoSquare && b.IsSquareAttacked(ks, b.sideToMove) {
			panic("thera: ApplyMove left the mover's king attacked: " + m.String())
		}
	}
}

// RewindMove pops the most recent undo record and restores the exact
// prior state, including castling rights, en passant target, clocks and
// the Zobrist key. It returns ErrNoHistory when the history is empty.
func (b *Board) RewindMove() error {
	n := len(b.history)
	if n == 0 {
		return ErrNoHistory
	}
	st := b.history[n-1]
	b.history = b.history[:n-1]

	m := st.move
	from, to := m.From(), m.To()
	mover := b.sideToMove.Opposite()
	b.sideToMove = mover

	// Rook back first, then the mover (a promotion reverts to the pawn).
	if rookFrom, rookTo, ok := m.RookMove(); ok {
		rook := b.removePiece(rookTo)
		b.addPiece(rookFrom, rook)
	}
	b.removePiece(to)
	b.addPiece(from, m.MovedPiece())

	if st.captured != NoPiece {
		if m.IsEnPassant() {
			b.addPiece(epCaptureSquare(to, mover), st.captured)
		} else {
			b.addPiece(to, st.captured)
		}
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	// Exact Zobrist restoration.
	b.zobristKey = st.prevZobrist

	if strictChecks {
		b.checkConsistent("RewindMove")
	}
	return nil
}

// ApplyMoveStatic performs the same piece relocation as ApplyMove but
// leaves side to move, castling rights, en passant state and the clocks
// untouched and pushes no undo record. Intended for manual board editing.
func (b *Board) ApplyMoveStatic(m Move) {
	from, to := m.From(), m.To()
	moving := b.pieces[int(from)]

	if m.IsEnPassant() {
		b.removePiece(epCaptureSquare(to, moving.Color()))
	} else {
		b.removePiece(to)
	}
	b.removePiece(from)
	if promo := m.PromotionPiece(); promo != NoPiece && moving.Type() == PieceTypePawn {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, moving)
	}
	if rookFrom, rookTo, ok := m.RookMove(); ok {
		rook := b.removePiece(rookFrom)
		b.addPiece(rookTo, rook)
	}

	if strictChecks {
		b.checkConsistent("ApplyMoveStatic")
	}
}

// SwitchPerspective flips the side to move without moving any piece.
// Debugging aid only; this is not a legal game transition.
func (b *Board) SwitchPerspective() {
	b.sideToMove = b.sideToMove.Opposite()
	b.zobristKey ^= zobristSide
}
