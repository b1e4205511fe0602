// Package oracle compares the in-process move generator against an
// external reference engine. The engine is driven over its standard
// input with the stockfish-style perft protocol and its per-move
// breakdown is diffed against the local one, so any generation bug
// surfaces as a named divergent move instead of a bare node count.
package oracle

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Robotino04/ChessBot/thera"
)

// Breakdown is one perft result: the subtree count per root move in
// UCI notation, plus the total leaf count.
type Breakdown struct {
	Moves map[string]uint64
	Nodes uint64
}

// PerftRunner produces a perft breakdown for a FEN position. Both the
// local generator and an external engine satisfy it, which is what lets
// Compare treat the two sides symmetrically.
type PerftRunner interface {
	PerftBreakdown(fen string, depth int) (Breakdown, error)
}

// Local runs perft with the in-process board and move generator.
type Local struct{}

func (Local) PerftBreakdown(fen string, depth int) (Breakdown, error) {
	board, err := thera.ParseFEN(fen)
	if err != nil {
		return Breakdown{}, err
	}
	bd := Breakdown{Moves: make(map[string]uint64)}
	for m, count := range thera.PerftDivide(board, depth) {
		bd.Moves[m.String()] = count
		bd.Nodes += count
	}
	return bd, nil
}

// Engine is a reference engine reached over a subprocess. The protocol
// is write-then-drain: the position, the perft command and quit go out
// in one burst, then the output stream is read to end-of-stream. There
// is no timeout; a hung engine blocks the caller but can never touch
// the local board.
type Engine struct {
	// Path of the engine binary. NewEngine defaults it to "stockfish".
	Path string
	// Args are extra command line arguments for the binary.
	Args []string
}

// NewEngine returns an Engine for the given binary, defaulting to
// "stockfish" when path is empty.
func NewEngine(path string) *Engine {
	if path == "" {
		path = "stockfish"
	}
	return &Engine{Path: path}
}

func (e *Engine) PerftBreakdown(fen string, depth int) (Breakdown, error) {
	cmd := exec.Command(e.Path, e.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Breakdown{}, fmt.Errorf("oracle: engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Breakdown{}, fmt.Errorf("oracle: engine stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return Breakdown{}, fmt.Errorf("oracle: starting %s: %w", e.Path, err)
	}

	fmt.Fprintf(stdin, "position fen %s\n", fen)
	fmt.Fprintf(stdin, "go perft %d\n", depth)
	fmt.Fprintf(stdin, "quit\n")
	stdin.Close()

	bd, perr := ParseBreakdown(stdout)
	if werr := cmd.Wait(); werr != nil && perr == nil {
		return Breakdown{}, fmt.Errorf("oracle: %s: %w", e.Path, werr)
	}
	if perr != nil {
		return Breakdown{}, perr
	}
	return bd, nil
}

// ParseBreakdown reads a perft transcript until end-of-stream. Move
// lines have the form "<from><to>[promo]: <count>" and the total
// arrives as "Nodes searched: <n>". Lines matching neither shape are
// skipped: engines print banners and blank lines around the breakdown.
// A move line with an unparsable count wraps thera.ErrInvalidArgument.
func ParseBreakdown(r io.Reader) (Breakdown, error) {
	bd := Breakdown{Moves: make(map[string]uint64)}
	sawTotal := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if rest, ok := strings.CutPrefix(line, "Nodes searched:"); ok {
			n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
			if err != nil {
				return Breakdown{}, fmt.Errorf("%w: total line %q", thera.ErrInvalidArgument, line)
			}
			bd.Nodes = n
			sawTotal = true
			continue
		}

		move, rest, ok := strings.Cut(line, ":")
		if !ok || !isMoveToken(move) {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			return Breakdown{}, fmt.Errorf("%w: move line %q", thera.ErrInvalidArgument, line)
		}
		bd.Moves[move] = n
	}
	if err := sc.Err(); err != nil {
		return Breakdown{}, fmt.Errorf("oracle: reading engine output: %w", err)
	}

	// Some engine builds omit the total; fall back to the column sum.
	if !sawTotal {
		for _, n := range bd.Moves {
			bd.Nodes += n
		}
	}
	return bd, nil
}

// isMoveToken reports whether s is a UCI move: two squares and an
// optional promotion letter.
func isMoveToken(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	for i := 0; i < 4; i += 2 {
		if s[i] < 'a' || s[i] > 'h' || s[i+1] < '1' || s[i+1] > '8' {
			return false
		}
	}
	if len(s) == 5 && !strings.ContainsRune("bnrq", rune(s[4])) {
		return false
	}
	return true
}
