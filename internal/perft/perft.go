// Package perft counts move-generation leaf nodes for verification.
package perft

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Entry is the node count below one root ply.
type Entry struct {
	Ply   board.Ply
	Nodes uint64
}

// Count returns the number of leaf nodes depth plies below b. The board is
// left as it was found.
func Count(b *board.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	plies := b.LegalPlies()
	if depth == 1 {
		return uint64(len(plies))
	}

	var nodes uint64
	for _, m := range plies {
		b.MakeMove(m)
		nodes += Count(b, depth-1)
		b.UnmakeMove(m)
	}
	return nodes
}

// Divide returns the node count below each root ply, sorted by UCI string.
func Divide(b *board.Board, depth int) []Entry {
	plies := b.LegalPlies()
	entries := make([]Entry, 0, len(plies))
	for _, m := range plies {
		b.MakeMove(m)
		entries = append(entries, Entry{Ply: m, Nodes: Count(b, depth-1)})
		b.UnmakeMove(m)
	}
	sortEntries(entries)
	return entries
}

// DivideParallel is Divide with the root plies spread over workers, each
// on its own clone of b. workers <= 0 means GOMAXPROCS. Cancelling ctx
// also stops subtrees already in progress.
func DivideParallel(ctx context.Context, b *board.Board, depth, workers int) ([]Entry, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	plies := b.LegalPlies()
	entries := make([]Entry, len(plies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range plies {
		i, m := i, m
		pos := b.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos.MakeMove(m)
			nodes, err := countContext(ctx, pos, depth-1)
			if err != nil {
				return err
			}
			entries[i] = Entry{Ply: m, Nodes: nodes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortEntries(entries)
	return entries, nil
}

// countContext is Count that gives up once ctx is done. The context is
// polled at every interior node; leaves are counted without a check.
func countContext(ctx context.Context, b *board.Board, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	plies := b.LegalPlies()
	if depth == 1 {
		return uint64(len(plies)), nil
	}

	var nodes uint64
	for _, m := range plies {
		b.MakeMove(m)
		n, err := countContext(ctx, b, depth-1)
		b.UnmakeMove(m)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Total sums the node counts of a divide.
func Total(entries []Entry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Ply.String() < entries[j].Ply.String()
	})
}
