package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/testutil"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPerftRecords(t *testing.T) {
	s := openTemp(t)

	t.Run("Missing", func(t *testing.T) {
		rec, err := s.GetPerft(42, 3)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, rec == nil, "expected no record")
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := &PerftRecord{
			FEN:    board.StartFEN,
			Depth:  2,
			Nodes:  400,
			Divide: map[string]uint64{"e2e4": 20, "g1f3": 20},
		}
		testutil.AssertNoError(t, s.PutPerft(7, want))

		got, err := s.GetPerft(7, 2)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got, want)

		other, err := s.GetPerft(7, 3)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, other == nil, "depth is part of the key")
	})
}

func TestPerftCaching(t *testing.T) {
	s := openTemp(t)
	b := board.NewStartBoard()

	calls := 0
	compute := func() (*PerftRecord, error) {
		calls++
		return &PerftRecord{Nodes: 400}, nil
	}

	rec, hit, err := s.Perft(b, 2, compute)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, hit, "first lookup should miss")
	testutil.AssertEqual(t, rec.Nodes, uint64(400))
	testutil.AssertEqual(t, rec.FEN, board.StartFEN)
	testutil.AssertEqual(t, rec.Depth, 2)

	rec, hit, err = s.Perft(b, 2, compute)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, hit, "second lookup should hit")
	testutil.AssertEqual(t, rec.Nodes, uint64(400))
	testutil.AssertEqual(t, calls, 1)

	stats, err := s.LoadStats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats, &CacheStats{Lookups: 2, Hits: 1, NodesServed: 400})
	testutil.AssertEqual(t, stats.HitRate(), 50.0)
}

// A record stored under the same key for another position is ignored.
func TestPerftHashCollision(t *testing.T) {
	s := openTemp(t)
	b := board.NewStartBoard()

	testutil.AssertNoError(t, s.PutPerft(b.Hash(), &PerftRecord{FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Depth: 1, Nodes: 1}))

	rec, hit, err := s.Perft(b, 1, func() (*PerftRecord, error) { return &PerftRecord{Nodes: 20}, nil })
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, hit)
	testutil.AssertEqual(t, rec.Nodes, uint64(20))
}

func TestPerftComputeError(t *testing.T) {
	s := openTemp(t)
	b := board.NewStartBoard()
	boom := errors.New("cancelled")

	_, _, err := s.Perft(b, 3, func() (*PerftRecord, error) { return nil, boom })
	testutil.AssertErrorIs(t, err, boom)

	rec, err := s.GetPerft(b.Hash(), 3)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, rec == nil, "failed computation was stored")
}

func TestInMemory(t *testing.T) {
	s, err := Open("")
	testutil.AssertNoError(t, err)
	defer s.Close()

	testutil.AssertNoError(t, s.PutPerft(1, &PerftRecord{Depth: 1, Nodes: 20}))
	rec, err := s.GetPerft(1, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Nodes, uint64(20))
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.PutPerft(9, &PerftRecord{Depth: 4, Nodes: 197281}))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dir)
	testutil.AssertNoError(t, err)
	defer s.Close()
	rec, err := s.GetPerft(9, 4)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Nodes, uint64(197281))
}

func TestEmptyStats(t *testing.T) {
	stats := &CacheStats{}
	testutil.AssertEqual(t, stats.HitRate(), 0.0)
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME only applies on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dataDir, err := DataDir()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, dataDir, filepath.Join(base, appName))

	dbDir, err := DatabaseDir()
	testutil.AssertNoError(t, err)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
