package board

// castlingLoss[sq] holds the rights lost when a piece leaves or lands on sq.
var castlingLoss = func() (loss [64]CastlingRights) {
	loss[E1] = WhiteKingSide | WhiteQueenSide
	loss[H1] = WhiteKingSide
	loss[A1] = WhiteQueenSide
	loss[E8] = BlackKingSide | BlackQueenSide
	loss[H8] = BlackKingSide
	loss[A8] = BlackQueenSide
	return loss
}()

// castleFor returns the castling option whose king lands on to.
func castleFor(to Square) castle {
	for _, cs := range castles {
		if cs.kingTo == to {
			return cs
		}
	}
	return castle{}
}

// MakeMove plays m for the side to move. The reversible fields are pushed
// onto the history stack first; UnmakeMove with the same ply undoes it.
func (b *Board) MakeMove(m Ply) {
	b.Snapshot()

	us := b.SideToMove
	from, to := m.From(), m.To()
	mover := b.squares[from]

	captured := NoPieceType
	switch {
	case m.IsEnPassant():
		captured = b.remove(b.enPassantVictim(us, to)).Type
	case !b.squares[to].IsEmpty():
		captured = b.remove(to).Type
	}

	b.relocate(from, to)
	if m.IsPromotion() {
		b.squares[to].Type = m.Promotion()
	}
	if m.IsCastling() {
		cs := castleFor(to)
		b.relocate(cs.rook, cs.rookTo)
	}

	b.castling &^= castlingLoss[from] | castlingLoss[to]

	switch {
	case mover.Type == Pawn || captured != NoPieceType:
		b.fifty = 0
	case b.fifty < FiftyMoveLimit:
		b.fifty++
	}

	b.capture = uint8(captured)
	b.epFile = 0
	if mover.Type == Pawn && absInt(int(to)-int(from)) == 16 {
		b.capture = EnPassantSentinel
		b.epFile = uint8(to.File())
	}

	b.SideToMove = us.Other()
	b.refresh()
}

// UnmakeMove reverts the last MakeMove, which must have been called with m.
func (b *Board) UnmakeMove(m Ply) {
	them := b.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	if m.IsCastling() {
		cs := castleFor(to)
		b.relocate(cs.rookTo, cs.rook)
	}
	if m.IsPromotion() {
		b.squares[to].Type = Pawn
	}
	b.relocate(to, from)

	switch {
	case m.IsEnPassant():
		b.place(Pawn, them, b.enPassantVictim(us, to))
	case b.capture != EnPassantSentinel && b.capture != uint8(NoPieceType):
		b.place(PieceType(b.capture), them, to)
	}

	b.SideToMove = us
	b.Restore()
	b.refresh()
}
