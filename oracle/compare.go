package oracle

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Robotino04/ChessBot/thera"
)

// Report describes how two perft breakdowns of the same position differ.
// Maps are keyed by UCI move text.
type Report struct {
	FEN   string
	Depth int

	LocalNodes uint64
	RefNodes   uint64

	// OnlyLocal and OnlyRef hold moves generated by exactly one side,
	// with that side's subtree count.
	OnlyLocal map[string]uint64
	OnlyRef   map[string]uint64

	// CountDiff holds moves both sides generated with differing
	// subtree counts: [local, reference].
	CountDiff map[string][2]uint64
}

// Equal reports whether the two breakdowns agreed completely.
func (r *Report) Equal() bool {
	return len(r.OnlyLocal) == 0 && len(r.OnlyRef) == 0 &&
		len(r.CountDiff) == 0 && r.LocalNodes == r.RefNodes
}

// String renders the report with moves in sorted order, one divergence
// per line.
func (r *Report) String() string {
	var sb strings.Builder
	if r.Equal() {
		fmt.Fprintf(&sb, "perft depth %d agrees: %d nodes [%s]", r.Depth, r.LocalNodes, r.FEN)
		return sb.String()
	}
	fmt.Fprintf(&sb, "perft depth %d diverges [%s]\n", r.Depth, r.FEN)
	fmt.Fprintf(&sb, "  nodes: local %d, reference %d\n", r.LocalNodes, r.RefNodes)
	for _, move := range sortedKeys(r.OnlyLocal) {
		fmt.Fprintf(&sb, "  only local: %s (%d)\n", move, r.OnlyLocal[move])
	}
	for _, move := range sortedKeys(r.OnlyRef) {
		fmt.Fprintf(&sb, "  only reference: %s (%d)\n", move, r.OnlyRef[move])
	}
	keys := maps.Keys(r.CountDiff)
	slices.Sort(keys)
	for _, move := range keys {
		d := r.CountDiff[move]
		fmt.Fprintf(&sb, "  count differs: %s local %d, reference %d\n", move, d[0], d[1])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedKeys(m map[string]uint64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Compare runs both sides at the given position and depth and diffs
// their breakdowns.
func Compare(local, ref PerftRunner, fen string, depth int) (*Report, error) {
	lb, err := local.PerftBreakdown(fen, depth)
	if err != nil {
		return nil, err
	}
	rb, err := ref.PerftBreakdown(fen, depth)
	if err != nil {
		return nil, err
	}
	return diff(fen, depth, lb, rb), nil
}

func diff(fen string, depth int, local, ref Breakdown) *Report {
	r := &Report{
		FEN:        fen,
		Depth:      depth,
		LocalNodes: local.Nodes,
		RefNodes:   ref.Nodes,
		OnlyLocal:  make(map[string]uint64),
		OnlyRef:    make(map[string]uint64),
		CountDiff:  make(map[string][2]uint64),
	}
	for move, ln := range local.Moves {
		rn, ok := ref.Moves[move]
		switch {
		case !ok:
			r.OnlyLocal[move] = ln
		case ln != rn:
			r.CountDiff[move] = [2]uint64{ln, rn}
		}
	}
	for move, rn := range ref.Moves {
		if _, ok := local.Moves[move]; !ok {
			r.OnlyRef[move] = rn
		}
	}
	return r
}

// CompareDeep drills into a divergence: when both sides generate a move
// but disagree on its subtree count, the move is applied locally and the
// comparison repeats one ply deeper into that child, until the ply where
// the breakdowns first disagree on the move set itself. The returned
// report names the deepest position reached; a nil error with an Equal
// report means the two sides agree.
func CompareDeep(local, ref PerftRunner, fen string, depth int) (*Report, error) {
	r, err := Compare(local, ref, fen, depth)
	if err != nil {
		return nil, err
	}
	if r.Equal() || depth <= 1 {
		return r, nil
	}

	gen := thera.NewMoveGenerator()
	for _, move := range sortedDiffKeys(r.CountDiff) {
		board, err := thera.ParseFEN(fen)
		if err != nil {
			return nil, err
		}
		partial, err := thera.ParseMove(move)
		if err != nil {
			return nil, err
		}
		resolved, ok := gen.ResolveMove(board, partial)
		if !ok {
			// Counted locally but unresolvable: report at this level.
			return r, nil
		}
		board.ApplyMove(resolved)
		child, err := CompareDeep(local, ref, board.FEN(), depth-1)
		if err != nil {
			return nil, err
		}
		if !child.Equal() {
			return child, nil
		}
	}
	return r, nil
}

func sortedDiffKeys(m map[string][2]uint64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
