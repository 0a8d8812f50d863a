// Command movegen loads a FEN position and prints its moves, a perft
// count, a debug dump or a board diagram.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position in FEN")
	depth      = flag.Int("depth", 0, "perft depth; 0 lists the moves instead")
	divide     = flag.Bool("divide", false, "print per-move node counts at the root")
	workers    = flag.Int("workers", 0, "perft workers; 0 means GOMAXPROCS")
	dump       = flag.Bool("dump", false, "print the piece lists and an ASCII board")
	svgPath    = flag.String("svg", "", "write an SVG diagram to file")
	pngPath    = flag.String("png", "", "write a PNG diagram to file")
	square     = flag.String("square", "", "highlight only the moves of the piece on this square")
	useCache   = flag.Bool("cache", false, "cache perft results in the user data directory")
	cacheDir   = flag.String("cachedir", "", "cache directory (implies -cache)")
	debug      = flag.Bool("debug", false, "validate board consistency during generation")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	board.DebugMoveValidation = *debug

	b, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}

	if *dump {
		if err := b.Dump(os.Stdout); err != nil {
			log.Fatal(err)
		}
		fmt.Print(b)
	}

	if err := writeDiagrams(b); err != nil {
		log.Fatal(err)
	}

	if *depth <= 0 {
		listMoves(os.Stdout, b)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runPerft(ctx, os.Stdout, b); err != nil {
		log.Fatal(err)
	}
}

func listMoves(w io.Writer, b *board.Board) {
	moves := b.Generate(b.SideToMove)
	total := 0
	for _, m := range moves {
		fmt.Fprintln(w, m)
		total += m.Count()
	}
	fmt.Fprintf(w, "%d records, %d moves\n", len(moves), total)

	switch {
	case b.IsCheckmate():
		fmt.Fprintln(w, "checkmate")
	case b.IsStalemate():
		fmt.Fprintln(w, "stalemate")
	case b.InCheck():
		fmt.Fprintln(w, "check")
	}
}

func runPerft(ctx context.Context, w io.Writer, b *board.Board) error {
	compute := func() (*storage.PerftRecord, error) {
		entries, err := perft.DivideParallel(ctx, b, *depth, *workers)
		if err != nil {
			return nil, err
		}
		rec := &storage.PerftRecord{
			Nodes:  perft.Total(entries),
			Divide: make(map[string]uint64, len(entries)),
		}
		for _, e := range entries {
			rec.Divide[e.Ply.String()] = e.Nodes
		}
		return rec, nil
	}

	start := time.Now()
	var (
		rec    *storage.PerftRecord
		cached bool
		err    error
	)

	if *useCache || *cacheDir != "" {
		s, openErr := openCache()
		if openErr != nil {
			return openErr
		}
		defer s.Close()

		rec, cached, err = s.Perft(b, *depth, compute)
	} else {
		rec, err = compute()
	}
	if err != nil {
		return err
	}

	if *divide {
		for _, e := range sortedDivide(rec.Divide) {
			fmt.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(w, "depth %d nodes %d time %s", *depth, rec.Nodes, elapsed.Round(time.Millisecond))
	if cached {
		fmt.Fprintf(w, " (cached, computed in %s)", rec.Elapsed.Round(time.Millisecond))
	} else if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, " nps %.0f", float64(rec.Nodes)/secs)
	}
	fmt.Fprintln(w)
	return nil
}

func openCache() (*storage.Storage, error) {
	if *cacheDir != "" {
		return storage.Open(*cacheDir)
	}
	return storage.OpenDefault()
}

func writeDiagrams(b *board.Board) error {
	if *svgPath == "" && *pngPath == "" {
		return nil
	}

	opts := diagram.Options{Marked: b.Checkers()}
	for _, m := range b.Generate(b.SideToMove) {
		if *square == "" || m.Piece.Square.String() == *square {
			opts.Highlight |= m.Dest
		}
	}

	if *svgPath != "" {
		if err := writeFile(*svgPath, func(w io.Writer) error { return diagram.SVG(w, b, opts) }); err != nil {
			return err
		}
		log.Printf("wrote %s", *svgPath)
	}
	if *pngPath != "" {
		if err := writeFile(*pngPath, func(w io.Writer) error { return diagram.PNG(w, b, opts) }); err != nil {
			return err
		}
		log.Printf("wrote %s", *pngPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
