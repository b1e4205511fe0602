package thera

import "strings"

// Move encodes a chess move in a 32-bit value: start and end squares,
// the moving and captured pieces, an optional promotion piece and the
// special-move flag. The paired rook relocation of a castling move is
// a pure function of the encoded value (see RookMove), so it always
// travels with the move and owns no separate state.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags
const (
	FlagNone       = 0
	FlagCastle     = 1
	FlagEnPassant  = 2
	FlagDoublePush = 3
	// (Promotion is indicated by a non-zero promotion piece)
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured (or NoPiece if none).
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool { return m.Flags() == FlagCastle }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flags() == FlagEnPassant }

// IsDoublePush reports whether the move is a two-square pawn advance.
func (m Move) IsDoublePush() bool { return m.Flags() == FlagDoublePush }

// EnPassantFile returns the file of the en-passant target created by a
// double pawn push, or -1 for any other move.
func (m Move) EnPassantFile() int {
	if !m.IsDoublePush() {
		return -1
	}
	return m.To().File()
}

// RookMove returns the paired rook relocation of a castling move.
// ok is false for non-castling moves.
func (m Move) RookMove() (from, to Square, ok bool) {
	if !m.IsCastle() {
		return NoSquare, NoSquare, false
	}
	switch m.To() {
	case 6: // g1
		return 7, 5, true
	case 2: // c1
		return 0, 3, true
	case 62: // g8
		return 63, 61, true
	case 58: // c8
		return 56, 59, true
	}
	return NoSquare, NoSquare, false
}

// String produces the UCI representation of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += strings.ToLower(string(pieceChar(promo)))
	}
	return s
}

// ParseMove converts UCI notation (e2e4, e7e8q) into a partially filled
// Move holding the squares and promotion type. The moving and captured
// pieces are not known without a board; resolve against the legal move
// list to obtain a playable move.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, errInvalid("move %q: wrong length", movestr)
	}
	from, err := SquareFromString(movestr[0:2])
	if err != nil {
		return 0, err
	}
	to, err := SquareFromString(movestr[2:4])
	if err != nil {
		return 0, err
	}
	var promo Piece
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = WhiteQueen
		case 'r':
			promo = WhiteRook
		case 'b':
			promo = WhiteBishop
		case 'n':
			promo = WhiteKnight
		default:
			return 0, errInvalid("move %q: unknown promotion piece", movestr)
		}
	}
	return NewMove(from, to, NoPiece, NoPiece, promo, FlagNone), nil
}

// SameBaseMove reports whether two moves agree on (start, end, promotion type),
// ignoring captured-piece and flag details.
func SameBaseMove(a, b Move) bool {
	return a.From() == b.From() && a.To() == b.To() &&
		a.PromotionPieceType() == b.PromotionPieceType()
}
