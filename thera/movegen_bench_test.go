package thera_test

import (
	"testing"

	"github.com/Robotino04/ChessBot/thera"
)

func TestGenerateAllMovesReusesBuffer(t *testing.T) {
	board := mustParse(t, kiwipeteFEN)
	gen := thera.NewMoveGenerator()
	gen.GenerateAllMoves(board) // warm the buffer

	allocs := testing.AllocsPerRun(100, func() {
		gen.GenerateAllMoves(board)
	})
	if allocs != 0 {
		t.Errorf("GenerateAllMoves allocates %.1f times per call, want 0", allocs)
	}
}

func BenchmarkGenerateAllMoves(b *testing.B) {
	thera.SetStrictChecks(false)
	defer thera.SetStrictChecks(true)

	board := mustParse(b, kiwipeteFEN)
	gen := thera.NewMoveGenerator()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.GenerateAllMoves(board)
	}
}

func BenchmarkApplyRewind(b *testing.B) {
	thera.SetStrictChecks(false)
	defer thera.SetStrictChecks(true)

	board := mustParse(b, kiwipeteFEN)
	move := thera.LegalMoves(board)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.ApplyMove(move)
		_ = board.RewindMove()
	}
}

func BenchmarkPerft3(b *testing.B) {
	thera.SetStrictChecks(false)
	defer thera.SetStrictChecks(true)

	board := mustParse(b, thera.FENStartPos)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := thera.Perft(board, 3); got != 8902 {
			b.Fatalf("perft drifted: %d", got)
		}
	}
}
