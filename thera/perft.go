package thera

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Every node is reached by applying the move and rewound afterwards, so
// a perft run exercises the full generate/apply/rewind cycle and leaves
// the board exactly as it found it.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := newPerftCtx(depth)
	return perftRec(b, depth, pc)
}

// perftCtx holds one MoveGenerator per depth so the move buffer of a
// frame survives the recursion into its children.
type perftCtx struct {
	gens []*MoveGenerator
}

func newPerftCtx(depth int) *perftCtx {
	return &perftCtx{gens: make([]*MoveGenerator, depth+1)}
}

func (pc *perftCtx) genFor(depth int) *MoveGenerator {
	if pc.gens[depth] == nil {
		pc.gens[depth] = NewMoveGenerator()
	}
	return pc.gens[depth]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range pc.genFor(depth).GenerateAllMoves(b) {
		b.ApplyMove(m)
		nodes += perftRec(b, depth-1, pc)
		_ = b.RewindMove()
	}
	return nodes
}

// PerftDivide maps each legal root move to the number of leaf nodes
// reachable through it at the given depth. The per-move counts sum to
// Perft(b, depth). Useful for bisecting a disagreement move by move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	pc := newPerftCtx(depth)
	for _, m := range pc.genFor(depth).GenerateAllMoves(b) {
		b.ApplyMove(m)
		result[m] = perftRec(b, depth-1, pc)
		_ = b.RewindMove()
	}
	return result
}

// PerftReport is Perft with hooks: report, when non-nil, receives each
// root move and its subtree count; exclude, when non-nil, prunes moves
// at every level of the tree. It returns the counted leaf nodes and the
// number of root moves that were excluded.
func PerftReport(b *Board, depth int, report func(Move, uint64), exclude func(Move) bool) (nodes, excludedRoots uint64) {
	if depth <= 0 {
		return 1, 0
	}
	pc := newPerftCtx(depth)
	for _, m := range pc.genFor(depth).GenerateAllMoves(b) {
		if exclude != nil && exclude(m) {
			excludedRoots++
			continue
		}
		b.ApplyMove(m)
		sub := perftReportRec(b, depth-1, pc, exclude)
		_ = b.RewindMove()
		if report != nil {
			report(m, sub)
		}
		nodes += sub
	}
	return nodes, excludedRoots
}

func perftReportRec(b *Board, depth int, pc *perftCtx, exclude func(Move) bool) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range pc.genFor(depth).GenerateAllMoves(b) {
		if exclude != nil && exclude(m) {
			continue
		}
		b.ApplyMove(m)
		nodes += perftReportRec(b, depth-1, pc, exclude)
		_ = b.RewindMove()
	}
	return nodes
}
