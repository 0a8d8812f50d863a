package board

import "testing"

func TestTablesBuiltOnce(t *testing.T) {
	if Tables() != Tables() {
		t.Fatal("Tables returned different bundles")
	}
	if *BuildTables() != *Tables() {
		t.Fatal("BuildTables disagrees with the shared bundle")
	}
}

// Every ray square must lie strictly in the ray's direction from the origin
// and the ray must run all the way to the edge.
func TestRaysStopAtEdge(t *testing.T) {
	steps := [numDirections][2]int{
		West: {-1, 0}, East: {1, 0}, North: {0, 1}, South: {0, -1},
		NorthWest: {-1, 1}, SouthWest: {-1, -1}, NorthEast: {1, 1}, SouthEast: {1, -1},
	}
	tb := Tables()

	for sq := A1; sq <= H8; sq++ {
		for dir := West; dir < numDirections; dir++ {
			var want Bitboard
			f, r := sq.File()+steps[dir][0], sq.Rank()+steps[dir][1]
			for onBoard(f, r) {
				want |= SquareBB(NewSquare(f, r))
				f += steps[dir][0]
				r += steps[dir][1]
			}
			if got := tb.Rays[sq][dir]; got != want {
				t.Errorf("Rays[%v][%d] =\n%v\nwant\n%v", sq, dir, got, want)
			}
		}
	}
}

func TestRayExamples(t *testing.T) {
	tb := Tables()
	tests := []struct {
		sq   Square
		dir  Direction
		want Bitboard
	}{
		{A1, East, Rank1 &^ SquareBB(A1)},
		{A1, North, FileA &^ SquareBB(A1)},
		{A1, West, Empty},
		{A1, SouthWest, Empty},
		{H8, SouthWest, SquareBB(G7) | SquareBB(F6) | SquareBB(E5) | SquareBB(D4) | SquareBB(C3) | SquareBB(B2) | SquareBB(A1)},
		{H1, NorthWest, SquareBB(G2) | SquareBB(F3) | SquareBB(E4) | SquareBB(D5) | SquareBB(C6) | SquareBB(B7) | SquareBB(A8)},
		{D4, NorthEast, SquareBB(E5) | SquareBB(F6) | SquareBB(G7) | SquareBB(H8)},
		{H4, East, Empty},
	}

	for _, tc := range tests {
		if got := tb.Rays[tc.sq][tc.dir]; got != tc.want {
			t.Errorf("Rays[%v][%d] = %x, want %x", tc.sq, tc.dir, uint64(got), uint64(tc.want))
		}
	}
}

// Leapers on an edge file must never wrap to the far side of the board.
func TestNoWraparound(t *testing.T) {
	tb := Tables()
	for sq := A1; sq <= H8; sq++ {
		check := func(name string, bb Bitboard, maxFiles int) {
			for _, to := range bb.Squares() {
				if d := absInt(to.File() - sq.File()); d > maxFiles {
					t.Errorf("%s[%v] contains %v, %d files away", name, sq, to, d)
				}
			}
		}
		check("Knight", tb.Knight[sq], 2)
		check("King", tb.King[sq], 1)
		check("PawnCapture[White]", tb.PawnCapture[White][sq], 1)
		check("PawnCapture[Black]", tb.PawnCapture[Black][sq], 1)
		check("PawnPush[White]", tb.PawnPush[White][sq], 0)
		check("PawnPush[Black]", tb.PawnPush[Black][sq], 0)
	}
}

func TestLeaperCounts(t *testing.T) {
	tb := Tables()
	tests := []struct {
		name string
		bb   Bitboard
		want int
	}{
		{"knight a1", tb.Knight[A1], 2},
		{"knight h8", tb.Knight[H8], 2},
		{"knight b1", tb.Knight[B1], 3},
		{"knight d4", tb.Knight[D4], 8},
		{"knight h5", tb.Knight[H5], 4},
		{"king a1", tb.King[A1], 3},
		{"king h4", tb.King[H4], 5},
		{"king e4", tb.King[E4], 8},
		{"white pawn a2 captures", tb.PawnCapture[White][A2], 1},
		{"white pawn h7 captures", tb.PawnCapture[White][H7], 1},
		{"black pawn e7 captures", tb.PawnCapture[Black][E7], 2},
		{"white pawn on rank 8 push", tb.PawnPush[White][E8], 0},
		{"black pawn on rank 1 push", tb.PawnPush[Black][E1], 0},
	}

	for _, tc := range tests {
		if got := tc.bb.PopCount(); got != tc.want {
			t.Errorf("%s: %d squares, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPawnTablesAreColored(t *testing.T) {
	tb := Tables()
	if tb.PawnPush[White][E2] != SquareBB(E3) {
		t.Errorf("white push from e2 = %v", tb.PawnPush[White][E2].Squares())
	}
	if tb.PawnPush[Black][E7] != SquareBB(E6) {
		t.Errorf("black push from e7 = %v", tb.PawnPush[Black][E7].Squares())
	}
	if tb.PawnCapture[White][E4] != SquareBB(D5)|SquareBB(F5) {
		t.Errorf("white captures from e4 = %v", tb.PawnCapture[White][E4].Squares())
	}
	if tb.PawnCapture[Black][E5] != SquareBB(D4)|SquareBB(F4) {
		t.Errorf("black captures from e5 = %v", tb.PawnCapture[Black][E5].Squares())
	}
}

func TestEnPassantTable(t *testing.T) {
	tb := Tables()
	for file := 0; file < 8; file++ {
		if got := tb.EnPassant[White][file].LSB(); got != NewSquare(file, 5) {
			t.Errorf("EnPassant[White][%d] = %v", file, got)
		}
		if got := tb.EnPassant[Black][file].LSB(); got != NewSquare(file, 2) {
			t.Errorf("EnPassant[Black][%d] = %v", file, got)
		}
	}
}

func TestBetweenAndLine(t *testing.T) {
	tb := Tables()
	tests := []struct {
		a, b Square
		want Bitboard
	}{
		{E1, E4, SquareBB(E2) | SquareBB(E3)},
		{A1, D4, SquareBB(B2) | SquareBB(C3)},
		{H1, E1, SquareBB(G1) | SquareBB(F1)},
		{E1, E2, Empty},
		{A1, B3, Empty},
	}
	for _, tc := range tests {
		if got := tb.Between(tc.a, tc.b); got != tc.want {
			t.Errorf("Between(%v, %v) = %v, want %v", tc.a, tc.b, got.Squares(), tc.want.Squares())
		}
	}

	if got := tb.Line(E1, Vertical); got != FileA<<4&^SquareBB(E1) {
		t.Errorf("Line(e1, vertical) = %v", got.Squares())
	}
	if tb.Line(E1, NotPinned) != Universe {
		t.Error("Line for an unpinned piece should not restrict")
	}
}

func TestSlideStopsOnBlocker(t *testing.T) {
	tb := Tables()
	occupied := SquareBB(A5) | SquareBB(A7)
	if got, want := tb.Slide(A1, North, occupied), SquareBB(A2)|SquareBB(A3)|SquareBB(A4)|SquareBB(A5); got != want {
		t.Errorf("Slide north from a1 = %v, want %v", got.Squares(), want.Squares())
	}
	occupied = SquareBB(B1)
	if got, want := tb.Slide(E1, West, occupied), SquareBB(D1)|SquareBB(C1)|SquareBB(B1); got != want {
		t.Errorf("Slide west from e1 = %v, want %v", got.Squares(), want.Squares())
	}
}
