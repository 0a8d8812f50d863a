package board

import "sync"

// Direction indexes the eight ray directions of the attack tables.
type Direction uint8

const (
	West Direction = iota
	East
	North
	South
	NorthWest
	SouthWest
	NorthEast
	SouthEast
	numDirections
)

// Square index step for one move in each direction.
var directionOffsets = [numDirections]int{-1, 1, 8, -8, 7, -9, 9, -7}

// Offset returns the square index delta of one step along d.
func (d Direction) Offset() int {
	return directionOffsets[d]
}

// PinAxis is the line a pinned piece is confined to.
type PinAxis uint8

const (
	NotPinned PinAxis = iota
	Horizontal
	Vertical
	DiagonalNWSE
	DiagonalNESW
)

// Axis returns the line that d runs along.
func (d Direction) Axis() PinAxis {
	switch d {
	case West, East:
		return Horizontal
	case North, South:
		return Vertical
	case NorthWest, SouthEast:
		return DiagonalNWSE
	default:
		return DiagonalNESW
	}
}

// axisDirections lists the two opposite directions that make up each axis.
var axisDirections = [...][2]Direction{
	Horizontal:   {West, East},
	Vertical:     {North, South},
	DiagonalNWSE: {NorthWest, SouthEast},
	DiagonalNESW: {NorthEast, SouthWest},
}

type leap struct{ file, rank int }

var (
	knightLeaps  = []leap{{-1, 2}, {1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}}
	kingSteps    = []leap{{-1, 0}, {1, 0}, {0, 1}, {0, -1}, {-1, 1}, {-1, -1}, {1, 1}, {1, -1}}
	pawnPushes   = [2][]leap{White: {{0, 1}}, Black: {{0, -1}}}
	pawnCaptures = [2][]leap{White: {{-1, 1}, {1, 1}}, Black: {{-1, -1}, {1, -1}}}
)

// AttackTables is the immutable per-square movement geometry.
type AttackTables struct {
	Rays        [64][numDirections]Bitboard // every square along a ray up to the edge
	Knight      [64]Bitboard
	King        [64]Bitboard
	PawnPush    [2][64]Bitboard // [Color][Square] single push target
	PawnCapture [2][64]Bitboard // [Color][Square] diagonal captures
	EnPassant   [2][8]Bitboard  // [mover Color][file] capture target square
}

var (
	tablesOnce sync.Once
	tables     *AttackTables
)

// Tables returns the process-wide attack tables, building them on first
// use. The result must not be modified.
func Tables() *AttackTables {
	tablesOnce.Do(func() {
		tables = BuildTables()
	})
	return tables
}

// BuildTables computes a fresh set of attack tables.
func BuildTables() *AttackTables {
	t := &AttackTables{}

	for sq := A1; sq <= H8; sq++ {
		file, rank := sq.File(), sq.Rank()

		west, east := file, 7-file
		north, south := 7-rank, rank
		reach := [numDirections]int{
			west, east, north, south,
			min(west, north), min(west, south), min(east, north), min(east, south),
		}

		for dir := West; dir < numDirections; dir++ {
			var ray Bitboard
			to := int(sq)
			for step := 0; step < reach[dir]; step++ {
				to += dir.Offset()
				ray |= SquareBB(Square(to))
			}
			t.Rays[sq][dir] = ray
		}

		t.Knight[sq] = leapTargets(file, rank, knightLeaps)
		t.King[sq] = leapTargets(file, rank, kingSteps)
		for c := White; c <= Black; c++ {
			t.PawnPush[c][sq] = leapTargets(file, rank, pawnPushes[c])
			t.PawnCapture[c][sq] = leapTargets(file, rank, pawnCaptures[c])
		}
	}

	for file := 0; file < 8; file++ {
		t.EnPassant[White][file] = SquareBB(NewSquare(file, 5))
		t.EnPassant[Black][file] = SquareBB(NewSquare(file, 2))
	}

	return t
}

// leapTargets collects the on-board squares reached by each offset. The
// file and rank are checked separately so nothing wraps across an edge.
func leapTargets(file, rank int, leaps []leap) Bitboard {
	var bb Bitboard
	for _, l := range leaps {
		f, r := file+l.file, rank+l.rank
		if onBoard(f, r) {
			bb |= SquareBB(NewSquare(f, r))
		}
	}
	return bb
}

// nearest returns the blocker closest to the ray's origin.
func nearest(blockers Bitboard, dir Direction) Square {
	if dir.Offset() > 0 {
		return blockers.LSB()
	}
	return blockers.MSB()
}

// Slide returns the squares a slider on sq reaches along dir, up to and
// including the first occupied square.
func (t *AttackTables) Slide(sq Square, dir Direction, occupied Bitboard) Bitboard {
	ray := t.Rays[sq][dir]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	return ray &^ t.Rays[nearest(blockers, dir)][dir]
}

// Between returns the squares strictly between a and b when they share a
// rank, file or diagonal, and Empty otherwise.
func (t *AttackTables) Between(a, b Square) Bitboard {
	target := SquareBB(b)
	for dir := West; dir < numDirections; dir++ {
		if t.Rays[a][dir]&target != 0 {
			return t.Rays[a][dir] &^ t.Rays[b][dir] &^ target
		}
	}
	return Empty
}

// Line returns both rays from sq along axis, excluding sq itself. An
// unpinned axis places no restriction and yields Universe.
func (t *AttackTables) Line(sq Square, axis PinAxis) Bitboard {
	if axis == NotPinned {
		return Universe
	}
	dirs := axisDirections[axis]
	return t.Rays[sq][dirs[0]] | t.Rays[sq][dirs[1]]
}
