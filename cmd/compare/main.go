package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Robotino04/ChessBot/oracle"
	"github.com/Robotino04/ChessBot/thera"
)

func main() {
	fen := flag.String("fen", thera.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	engine := flag.String("engine", "stockfish", "Reference engine binary")
	deep := flag.Bool("deep", false, "Drill into divergent moves ply by ply")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	if _, err := thera.ParseFEN(*fen); err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	ref := oracle.NewEngine(*engine)
	compare := oracle.Compare
	if *deep {
		compare = oracle.CompareDeep
	}
	report, err := compare(oracle.Local{}, ref, *fen, *depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compare error: %v\n", err)
		os.Exit(2)
	}

	fmt.Println(report)
	if !report.Equal() {
		os.Exit(1)
	}
}
