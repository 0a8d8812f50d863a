package board

// guard is the king-safety picture for one side: what the opponent
// attacks, who gives check, which squares resolve the check and which
// friendly pieces are pinned.
type guard struct {
	attacked  Bitboard // opponent attacks with our king lifted off the board
	checkers  Bitboard
	stopCheck Bitboard
	pins      [64]PinAxis
}

// pieceAttacks returns the squares the piece attacks given an occupancy.
// Slider rays stop on and include the first occupied square of any color.
func (b *Board) pieceAttacks(p Piece, occupied Bitboard) Bitboard {
	t := b.tables
	switch p.Type {
	case Pawn:
		return t.PawnCapture[p.Color][p.Square]
	case Knight:
		return t.Knight[p.Square]
	case King:
		return t.King[p.Square]
	}
	var bb Bitboard
	first, last := p.Type.directions()
	for dir := first; dir < last; dir++ {
		bb |= t.Slide(p.Square, dir, occupied)
	}
	return bb
}

// attacks returns every square c attacks and the subset of c's pieces that
// attack target.
func (b *Board) attacks(c Color, occupied Bitboard, target Square) (attacked, attackers Bitboard) {
	for _, sq := range b.roster[c] {
		a := b.pieceAttacks(b.squares[sq], occupied)
		attacked |= a
		if target != NoSquare && a.IsSet(target) {
			attackers |= SquareBB(sq)
		}
	}
	return attacked, attackers
}

// computeGuard builds the guard state for us.
func (b *Board) computeGuard(us Color) guard {
	them := us.Other()
	king := b.KingSquare(us)

	occupied := b.AllOccupied
	if king != NoSquare {
		occupied &^= SquareBB(king)
	}

	g := guard{stopCheck: Universe}
	g.attacked, g.checkers = b.attacks(them, occupied, king)
	if king == NoSquare {
		return g
	}

	switch g.checkers.PopCount() {
	case 0:
	case 1:
		checker := g.checkers.LSB()
		g.stopCheck = g.checkers | b.tables.Between(king, checker)
	default:
		g.stopCheck = Empty
	}

	b.findPins(us, king, &g)
	return g
}

// findPins casts a ray from the king in every direction. A pin exists when
// the ray meets exactly one friendly piece and then an enemy slider that
// moves along that direction.
func (b *Board) findPins(us Color, king Square, g *guard) {
	t := b.tables
	for dir := West; dir < numDirections; dir++ {
		blockers := t.Rays[king][dir] & b.AllOccupied
		if blockers == 0 {
			continue
		}
		first := nearest(blockers, dir)
		if b.squares[first].Color != us {
			continue
		}
		beyond := t.Rays[first][dir] & b.AllOccupied
		if beyond == 0 {
			continue
		}
		pinner := b.squares[nearest(beyond, dir)]
		if pinner.Color == us.Other() && pinner.Type.slidesAlong(dir) {
			g.pins[first] = dir.Axis()
		}
	}
}

// guardFor returns the guard state for c, reusing the cached one when c is
// the side to move.
func (b *Board) guardFor(c Color) *guard {
	if c == b.SideToMove {
		return &b.guard
	}
	g := b.computeGuard(c)
	return &g
}
