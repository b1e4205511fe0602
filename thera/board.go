package thera

import "fmt"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return 1 - c }

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Board holds the canonical position state: a mailbox of pieces, one
// bitboard per (color, piece type) pair, per-side occupancy, side to
// move, castling rights and en passant target, plus the undo history
// of every move applied and not yet rewound. The Board is the sole
// mutator of position state and is not safe for concurrent use.
type Board struct {
	// Piece placement array for each square (NoPiece = empty)
	pieces [64]Piece

	// Per piece type bitboards, indexed by [color][PieceType]; index 0 unused
	byType [2][7]Bitboard

	// Occupancy bitboards for each side
	occupancy [2]Bitboard

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square

	// Halfmove clock (half-moves since last capture or pawn advance)
	halfmoveClock int
	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Zobrist hash key for the current position
	zobristKey uint64

	// Undo records, one per move applied and not yet rewound
	history []undoState
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the current castling availability flags.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// EnPassantCaptureSquare returns the square of the pawn that would be
// captured en passant, or NoSquare when no en passant capture is possible.
func (b *Board) EnPassantCaptureSquare() Square {
	switch {
	case b.enPassantSquare == NoSquare:
		return NoSquare
	case b.enPassantSquare.Rank() == 2:
		return b.enPassantSquare + 8
	default:
		return b.enPassantSquare - 8
	}
}

// HalfmoveClock returns the half-move count since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// HistoryDepth returns the number of moves applied and not yet rewound.
func (b *Board) HistoryDepth() int { return len(b.history) }

// PieceAt returns the piece on a square. Bounds are checked only in strict mode.
func (b *Board) PieceAt(sq Square) Piece {
	if strictChecks && (sq < 0 || sq > 63) {
		panic(fmt.Sprintf("thera: square %d out of range", sq))
	}
	return b.pieces[int(sq)]
}

// At returns the piece at (file, rank), both 0-based.
func (b *Board) At(file, rank int) Piece {
	if strictChecks && (file < 0 || file > 7 || rank < 0 || rank > 7) {
		panic(fmt.Sprintf("thera: coordinate (%d,%d) out of range", file, rank))
	}
	return b.pieces[rank*8+file]
}

// PieceBitboard returns the bitboard holding all pieces equal to p.
func (b *Board) PieceBitboard(p Piece) Bitboard {
	return b.byType[int(p.Color())][p.Type()]
}

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.occupancy[int(c)] }

// AllPieces returns a bitboard of all occupied squares.
func (b *Board) AllPieces() Bitboard { return b.occupancy[0] | b.occupancy[1] }

// kingSquare returns the square of c's king, or NoSquare if absent.
func (b *Board) kingSquare(c Color) Square {
	return b.byType[int(c)][PieceTypeKing].First()
}

// addPiece places a piece on an empty square, updating the mailbox, the
// typed bitboard, the occupancy and the Zobrist key together.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	if strictChecks && b.pieces[int(sq)] != NoPiece {
		panic(fmt.Sprintf("thera: placing %v on occupied square %v", p, sq))
	}
	ci := int(p.Color())
	b.pieces[int(sq)] = p
	b.occupancy[ci].Set(sq)
	b.byType[ci][p.Type()].Set(sq)
	b.zobristKey ^= zobristPiece[p][int(sq)]
}

// removePiece removes and returns the piece on a square, updating the
// mailbox, the typed bitboard, the occupancy and the Zobrist key together.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	ci := int(p.Color())
	b.pieces[int(sq)] = NoPiece
	b.occupancy[ci].Clear(sq)
	b.byType[ci][p.Type()].Clear(sq)
	b.zobristKey ^= zobristPiece[p][int(sq)]
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// Validate checks internal consistency between the mailbox, the typed
// bitboards, the occupancy and the Zobrist key.
func (b *Board) Validate() bool {
	var occ [2]Bitboard
	var byType [2][7]Bitboard
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[int(sq)]
		if p == NoPiece {
			continue
		}
		if p.Type() == PieceTypeNone || p.Type() > PieceTypeKing {
			return false
		}
		ci := int(p.Color())
		occ[ci].Set(sq)
		byType[ci][p.Type()].Set(sq)
	}
	if occ != b.occupancy || byType != b.byType {
		return false
	}
	return b.zobristKey == b.ComputeZobrist()
}

// checkConsistent panics when strict mode is on and the board state has desynced.
func (b *Board) checkConsistent(op string) {
	if strictChecks && !b.Validate() {
		panic("thera: board state desync after " + op)
	}
}
