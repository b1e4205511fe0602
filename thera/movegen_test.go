package thera_test

import (
	"testing"

	"github.com/Robotino04/ChessBot/thera"
)

func TestStartPositionMoveCount(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	moves := thera.LegalMoves(board)
	if len(moves) != 20 {
		for _, m := range moves {
			t.Logf("  %s", m)
		}
		t.Fatalf("start position: got %d moves want 20", len(moves))
	}
}

func TestCastlingGeneration(t *testing.T) {
	cases := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{"both available",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"no rights",
			"r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", false, false},
		{"king-side transit attacked",
			"r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", false, true},
		{"queen-side transit attacked",
			"r3k2r/8/8/8/8/3r4/8/R3K2R w KQkq - 0 1", true, false},
		{"in check",
			"r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1", false, false},
		{"queen-side path occupied",
			"r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", true, false},
		{"king-side path occupied",
			"r3k2r/8/8/8/8/8/8/R3K1NR w KQkq - 0 1", false, true},
		{"rook missing",
			"r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1", false, true},
		// b1 under attack does not matter for queen-side castling: only
		// the king's own path counts.
		{"b1 attacked",
			"r3k2r/8/8/8/8/1r6/8/R3K2R w KQkq - 0 1", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			board := mustParse(t, tc.fen)
			if got := hasMove(board, "e1g1"); got != tc.kingSide {
				t.Errorf("e1g1 generated=%v want %v", got, tc.kingSide)
			}
			if got := hasMove(board, "e1c1"); got != tc.queenSide {
				t.Errorf("e1c1 generated=%v want %v", got, tc.queenSide)
			}
		})
	}
}

func TestEnPassantLifecycle(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	m := findMove(t, board, "e2e4")
	if !m.IsDoublePush() {
		t.Fatal("e2e4 not flagged as double push")
	}
	board.ApplyMove(m)
	if got := board.EnPassantSquare(); got != thera.SquareOf(4, 2) {
		t.Fatalf("en passant target after e4: got %v want e3", got)
	}
	// Any reply that is not a double push clears the target.
	board.ApplyMove(findMove(t, board, "g8f6"))
	if got := board.EnPassantSquare(); got != thera.NoSquare {
		t.Errorf("en passant target after Nf6: got %v want none", got)
	}
}

func TestEnPassantCaptureGenerated(t *testing.T) {
	board := mustParse(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	m := findMove(t, board, "e5d6")
	if !m.IsEnPassant() {
		t.Errorf("e5d6 flag: got %d want en passant", m.Flags())
	}
	if m.CapturedPiece() != thera.BlackPawn {
		t.Errorf("captured: got %v want BlackPawn", m.CapturedPiece())
	}
}

func TestEnPassantDiscoveredCheckSuppressed(t *testing.T) {
	// Capturing en passant would empty both d4 and e4, exposing the
	// black king on a4 to the queen on h4 along the rank.
	board := mustParse(t, "8/8/8/8/k2Pp2Q/8/8/4K3 b - d3 0 1")
	if hasMove(board, "e4d3") {
		t.Error("en passant capture exposing the king was generated")
	}
}

func TestEnPassantCaptureOfCheckingPawn(t *testing.T) {
	// The double-pushed d5 pawn checks the king on e4; capturing it en
	// passant is the one pawn move that resolves the check.
	board := mustParse(t, "4k3/8/8/3pP3/4K3/8/8/8 w - d6 0 1")
	if !hasMove(board, "e5d6") {
		t.Error("en passant capture of the checking pawn not generated")
	}
}

func TestPromotionCompleteness(t *testing.T) {
	board := mustParse(t, "8/P7/8/8/8/8/7k/K7 w - - 0 1")
	var promos []thera.Move
	for _, m := range thera.LegalMoves(board) {
		if m.From() == thera.SquareOf(0, 6) {
			promos = append(promos, m)
		}
	}
	if len(promos) != 4 {
		t.Fatalf("a7a8: got %d moves want 4 promotions", len(promos))
	}
	seen := map[thera.PieceType]bool{}
	for _, m := range promos {
		if m.PromotionPiece() == thera.NoPiece {
			t.Errorf("%s: plain move to the last rank", m)
		}
		seen[m.PromotionPieceType()] = true
	}
	for _, pt := range []thera.PieceType{thera.PieceTypeQueen, thera.PieceTypeRook, thera.PieceTypeBishop, thera.PieceTypeKnight} {
		if !seen[pt] {
			t.Errorf("missing promotion to piece type %v", pt)
		}
	}
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	// Re2 is pinned by the rook on e7 and may only slide on the e-file.
	board := mustParse(t, "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	gen := thera.NewMoveGenerator()
	gen.GenerateAttackData(board)
	if !gen.PinnedPieces().Has(thera.SquareOf(4, 1)) {
		t.Fatal("e2 rook not marked pinned")
	}
	for _, m := range thera.LegalMoves(board) {
		if m.From() != thera.SquareOf(4, 1) {
			continue
		}
		if m.To().File() != 4 {
			t.Errorf("pinned rook left the e-file: %s", m)
		}
	}
	if !hasMove(board, "e2e7") {
		t.Error("pinned rook may capture its pinner")
	}
}

func TestPinnedPawnCannotPush(t *testing.T) {
	// The f2 pawn is pinned along h4-e1; pushing leaves the line.
	board := mustParse(t, "4k3/8/8/8/7b/8/5P2/4K3 w - - 0 1")
	if hasMove(board, "f2f3") || hasMove(board, "f2f4") {
		t.Error("pinned pawn pushed off its pin line")
	}
}

func TestPinnedKnightFullyFrozen(t *testing.T) {
	board := mustParse(t, "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	for _, m := range thera.LegalMoves(board) {
		if m.From() == thera.SquareOf(4, 1) {
			t.Errorf("pinned knight moved: %s", m)
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Black is checked by both the knight on f6 and the rook on e1.
	board := mustParse(t, "4k3/8/5N2/8/8/8/8/4RK2 b - - 0 1")
	moves := thera.LegalMoves(board)
	if len(moves) == 0 {
		t.Fatal("no evasions in double check position")
	}
	for _, m := range moves {
		if m.MovedPiece() != thera.BlackKing {
			t.Errorf("non-king move in double check: %s", m)
		}
	}
}

func TestCheckEvasionByBlockAndCapture(t *testing.T) {
	// White king on e1 checked by the rook on e8; legal non-king
	// replies must block on the e-file or capture the rook.
	board := mustParse(t, "4r1k1/8/8/8/8/8/3Q4/4K3 w - - 0 1")
	for _, m := range thera.LegalMoves(board) {
		if m.MovedPiece() == thera.WhiteKing {
			continue
		}
		if m.To().File() != 4 {
			t.Errorf("non-king reply off the checking line: %s", m)
		}
	}
	if !hasMove(board, "d2e2") {
		t.Error("blocking move d2e2 missing")
	}
}

func TestNoDuplicateMoves(t *testing.T) {
	for _, fen := range []string{thera.FENStartPos, kiwipeteFEN} {
		board := mustParse(t, fen)
		seen := map[string]bool{}
		for _, m := range thera.LegalMoves(board) {
			key := m.String()
			if seen[key] {
				t.Errorf("%s: duplicate move %s", fen, key)
			}
			seen[key] = true
		}
	}
}

func TestAttackedSquares(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	gen := thera.NewMoveGenerator()
	gen.GenerateAttackData(board)
	attacked := gen.AttackedSquares()
	// Black's pawns cover all of rank 6.
	for file := 0; file < 8; file++ {
		if !attacked.Has(thera.SquareOf(file, 5)) {
			t.Errorf("square %v not marked attacked", thera.SquareOf(file, 5))
		}
	}
	if attacked.Has(thera.SquareOf(4, 3)) {
		t.Error("e4 marked attacked in the start position")
	}
	if gen.InCheck() {
		t.Error("start position reported as check")
	}
}

func TestResolveMove(t *testing.T) {
	board := mustParse(t, thera.FENStartPos)
	partial, err := thera.ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	gen := thera.NewMoveGenerator()
	m, ok := gen.ResolveMove(board, partial)
	if !ok {
		t.Fatal("e2e4 did not resolve")
	}
	if m.MovedPiece() != thera.WhitePawn || !m.IsDoublePush() {
		t.Errorf("resolved move incomplete: piece=%v flags=%d", m.MovedPiece(), m.Flags())
	}
	if _, ok := gen.ResolveMove(board, mustParseMove(t, "e2e5")); ok {
		t.Error("illegal move resolved")
	}
}

func mustParseMove(t *testing.T, uci string) thera.Move {
	t.Helper()
	m, err := thera.ParseMove(uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	return m
}
