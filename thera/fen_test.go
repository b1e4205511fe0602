package thera_test

import (
	"errors"
	"testing"

	"github.com/Robotino04/ChessBot/thera"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		thera.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 42 99",
	}
	for _, fen := range fens {
		board := mustParse(t, fen)
		if got := board.FEN(); got != fen {
			t.Errorf("round trip changed FEN:\n in  %s\n out %s", fen, got)
		}
	}
}

func TestParseFENStartPosition(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	if got := board.PieceAt(thera.SquareOf(4, 0)); got != thera.WhiteKing {
		t.Errorf("e1: got %v want WhiteKing", got)
	}
	if got := board.At(3, 7); got != thera.BlackQueen {
		t.Errorf("d8: got %v want BlackQueen", got)
	}
	if board.SideToMove() != thera.White {
		t.Errorf("side to move: got %v want White", board.SideToMove())
	}
	wantRights := thera.CastlingWhiteK | thera.CastlingWhiteQ | thera.CastlingBlackK | thera.CastlingBlackQ
	if board.CastlingRights() != wantRights {
		t.Errorf("castling rights: got %v want %v", board.CastlingRights(), wantRights)
	}
	if board.EnPassantSquare() != thera.NoSquare {
		t.Errorf("en passant: got %v want NoSquare", board.EnPassantSquare())
	}
	if board.HalfmoveClock() != 0 || board.FullmoveNumber() != 1 {
		t.Errorf("clocks: got %d/%d want 0/1", board.HalfmoveClock(), board.FullmoveNumber())
	}
	if !board.Validate() {
		t.Error("start position failed Validate")
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"five fields", "8/8/8/8/8/8/8/8 w - - 0"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"unknown piece", "8/8/8/8/8/8/8/7x w - - 0 1"},
		{"rank too long", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"rank too short", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"bad castling", "8/8/8/8/8/8/8/8 w KX - 0 1"},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - e9 0 1"},
		{"negative halfmove", "8/8/8/8/8/8/8/8 w - - -1 1"},
		{"zero fullmove", "8/8/8/8/8/8/8/8 w - - 0 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := thera.ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want error", tc.fen)
			}
			if !errors.Is(err, thera.ErrInvalidArgument) {
				t.Errorf("error %v does not wrap ErrInvalidArgument", err)
			}
		})
	}
}

func TestLoadFENFailureLeavesBoardUntouched(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	if err := board.LoadFEN("not a fen"); err == nil {
		t.Fatal("LoadFEN accepted garbage")
	}
	if got := board.FEN(); got != thera.FENStartPos {
		t.Errorf("board modified by failed load:\n got %s", got)
	}
}

func TestLoadFENClearsHistory(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	board.ApplyMove(findMove(t, board, "e2e4"))
	if board.HistoryDepth() != 1 {
		t.Fatalf("history depth: got %d want 1", board.HistoryDepth())
	}
	if err := board.LoadFEN(thera.FENStartPos); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if board.HistoryDepth() != 0 {
		t.Errorf("history depth after load: got %d want 0", board.HistoryDepth())
	}
	if err := board.RewindMove(); !errors.Is(err, thera.ErrNoHistory) {
		t.Errorf("RewindMove after load: got %v want ErrNoHistory", err)
	}
}

func TestEnPassantCaptureSquare(t *testing.T) {
	board := mustParse(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	// Target e3, captured pawn stands on e4.
	if got := board.EnPassantCaptureSquare(); got != thera.SquareOf(4, 3) {
		t.Errorf("capture square: got %v want e4", got)
	}

	board = mustParse(t, "rnbqkbnr/ppp1pppp/8/3p4/8/8/PPPPPPPP/RNBQKBNR w KQkq d6 0 2")
	// Target d6, captured pawn stands on d5.
	if got := board.EnPassantCaptureSquare(); got != thera.SquareOf(3, 4) {
		t.Errorf("capture square: got %v want d5", got)
	}

	board = mustParse(t, thera.FENStartPos)
	if got := board.EnPassantCaptureSquare(); got != thera.NoSquare {
		t.Errorf("capture square without target: got %v want NoSquare", got)
	}
}
