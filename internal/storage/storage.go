package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const (
	keyStats     = "stats"
	perftKeyBase = "perft"
)

// PerftRecord is one cached perft result.
type PerftRecord struct {
	FEN      string            `json:"fen"`
	Depth    int               `json:"depth"`
	Nodes    uint64            `json:"nodes"`
	Divide   map[string]uint64 `json:"divide,omitempty"`
	Computed time.Time         `json:"computed"`
	Elapsed  time.Duration     `json:"elapsed"`
}

// CacheStats counts cache traffic across runs.
type CacheStats struct {
	Lookups     int    `json:"lookups"`
	Hits        int    `json:"hits"`
	NodesServed uint64 `json:"nodes_served"`
}

// HitRate returns the hit rate as a percentage (0-100)
func (s *CacheStats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir opens an in-memory
// database that is discarded on Close.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft cache: %w", err)
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the per-user data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	return []byte(fmt.Sprintf("%s/%016x/%d", perftKeyBase, hash, depth))
}

// PutPerft stores rec under the position hash and depth.
func (s *Storage) PutPerft(hash uint64, rec *PerftRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, rec.Depth), data)
	})
}

// GetPerft loads the record for hash and depth. A missing record returns
// nil and no error.
func (s *Storage) GetPerft(hash uint64, depth int) (*PerftRecord, error) {
	var rec *PerftRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec = &PerftRecord{}
			return json.Unmarshal(val, rec)
		})
	})

	return rec, err
}

// Perft returns the cached record for b at depth, calling compute and
// storing its result on a miss. A stored record whose FEN differs from b
// is a hash collision and counts as a miss. A compute error is returned
// and nothing is stored.
func (s *Storage) Perft(b *board.Board, depth int, compute func() (*PerftRecord, error)) (*PerftRecord, bool, error) {
	hash, fen := b.Hash(), b.FEN()

	rec, err := s.GetPerft(hash, depth)
	if err != nil {
		return nil, false, err
	}
	hit := rec != nil && rec.FEN == fen

	if !hit {
		start := time.Now()
		if rec, err = compute(); err != nil {
			return nil, false, err
		}
		rec.FEN = fen
		rec.Depth = depth
		rec.Computed = start
		rec.Elapsed = time.Since(start)
		if err := s.PutPerft(hash, rec); err != nil {
			return nil, false, err
		}
	}

	if err := s.recordLookup(hit, rec.Nodes); err != nil {
		return nil, false, err
	}
	return rec, hit, nil
}

// SaveStats saves cache statistics
func (s *Storage) SaveStats(stats *CacheStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads cache statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

func (s *Storage) recordLookup(hit bool, nodes uint64) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Lookups++
	if hit {
		stats.Hits++
		stats.NodesServed += nodes
	}

	return s.SaveStats(stats)
}
