package thera_test

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/Robotino04/ChessBot/thera"
)

// moveStrings returns the sorted UCI strings of our legal moves.
func moveStrings(b *thera.Board) []string {
	moves := thera.LegalMoves(b)
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// refMoveStrings returns the sorted UCI strings of dragontoothmg's
// legal moves for the same position.
func refMoveStrings(fen string) []string {
	ref := dragontoothmg.ParseFen(fen)
	moves := ref.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	sort.Strings(out)
	return out
}

func TestMoveSetMatchesReference(t *testing.T) {
	fens := []string{
		thera.FENStartPos,
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"8/8/8/8/k2Pp2Q/8/8/4K3 b - d3 0 1",
		"4k3/8/8/3pP3/4K3/8/8/8 w - d6 0 1",
	}
	for _, fen := range fens {
		board := mustParse(t, fen)
		got := moveStrings(board)
		want := refMoveStrings(fen)
		if len(got) != len(want) {
			t.Errorf("%s:\n ours %v\n ref  %v", fen, got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%s:\n ours %v\n ref  %v", fen, got, want)
				break
			}
		}
	}
}

func TestMoveSetMatchesReferenceAlongLine(t *testing.T) {
	line := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5c6", "d7c6", "e1g1", "f7f6", "d2d4", "e5d4"}

	board := mustParse(t, thera.FENStartPos)
	ref := dragontoothmg.ParseFen(thera.FENStartPos)
	for ply, uci := range line {
		got := moveStrings(board)
		want := refMoveStrings(ref.ToFen())
		if len(got) != len(want) {
			t.Fatalf("ply %d (%v to move):\n ours %v\n ref  %v", ply, board.SideToMove(), got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("ply %d:\n ours %v\n ref  %v", ply, got, want)
			}
		}

		board.ApplyMove(findMove(t, board, uci))
		applied := false
		for _, rm := range ref.GenerateLegalMoves() {
			rm := rm
			if rm.String() == uci {
				ref.Apply(rm)
				applied = true
				break
			}
		}
		if !applied {
			t.Fatalf("ply %d: reference rejects %s", ply, uci)
		}
	}
}

func TestPerftMatchesReference(t *testing.T) {
	for _, tc := range perftTable {
		board := mustParse(t, tc.fen)
		refBoard := dragontoothmg.ParseFen(tc.fen)
		depth := 3
		if depth > len(tc.counts) {
			depth = len(tc.counts)
		}
		got := thera.Perft(board, depth)
		want := uint64(dragontoothmg.Perft(&refBoard, depth))
		if got != want {
			t.Errorf("%s depth %d: got %d, reference %d", tc.name, depth, got, want)
		}
	}
}
