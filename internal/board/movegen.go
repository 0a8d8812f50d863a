package board

import "log"

// DebugMoveValidation enables consistency checks during generation.
var DebugMoveValidation = false

// promotionPieces is the emission order for a promoting pawn.
var promotionPieces = [4]PieceType{Knight, Bishop, Rook, Queen}

// castle describes one castling option.
type castle struct {
	right   CastlingRights
	color   Color
	king    Square
	rook    Square
	kingTo  Square
	rookTo  Square
	vacant  Bitboard // between king and rook
	transit Bitboard // squares the king crosses or lands on
}

var castles = [4]castle{
	{WhiteKingSide, White, E1, H1, G1, F1, SquareBB(F1) | SquareBB(G1), SquareBB(F1) | SquareBB(G1)},
	{WhiteQueenSide, White, E1, A1, C1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(D1) | SquareBB(C1)},
	{BlackKingSide, Black, E8, H8, G8, F8, SquareBB(F8) | SquareBB(G8), SquareBB(F8) | SquareBB(G8)},
	{BlackQueenSide, Black, E8, A8, C8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(D8) | SquareBB(C8)},
}

// Generate returns the moves of c's pieces, one Move per piece with a
// non-empty destination set (four for a promoting pawn). King safety,
// pins and check evasion are already applied. The board is not modified.
func (b *Board) Generate(c Color) []Move {
	if c >= NoColor {
		return nil
	}
	g := b.guardFor(c)

	if DebugMoveValidation {
		b.validate(c)
	}

	moves := make([]Move, 0, len(b.roster[c])+4)
	for _, sq := range b.roster[c] {
		p := b.squares[sq]
		switch p.Type {
		case Pawn:
			moves = b.pawnMoves(p, g, moves)
		case Knight:
			moves = appendMove(moves, p, b.knightMoves(p, g))
		case King:
			moves = appendMove(moves, p, b.kingMoves(p, g))
		default:
			moves = appendMove(moves, p, b.slidingMoves(p, g))
		}
	}
	return moves
}

func appendMove(moves []Move, p Piece, dest Bitboard) []Move {
	if dest == 0 {
		return moves
	}
	return append(moves, Move{Piece: p, Dest: dest})
}

// restrict applies the pin axis and then the check mask.
func (b *Board) restrict(p Piece, g *guard, dest Bitboard) Bitboard {
	if axis := g.pins[p.Square]; axis != NotPinned {
		dest &= b.tables.Line(b.KingSquare(p.Color), axis)
	}
	return dest & g.stopCheck
}

// slidingMoves walks each ray of the piece to its nearest blocker. A
// friendly blocker ends the ray one square early; an enemy blocker is a
// capture.
func (b *Board) slidingMoves(p Piece, g *guard) Bitboard {
	t := b.tables
	var dest Bitboard
	first, last := p.Type.directions()
	for dir := first; dir < last; dir++ {
		ray := t.Rays[p.Square][dir]
		blockers := ray & b.AllOccupied
		if blockers == 0 {
			dest |= ray
			continue
		}
		stop := nearest(blockers, dir)
		reach := ray &^ t.Rays[stop][dir]
		if b.squares[stop].Color == p.Color {
			reach &^= SquareBB(stop)
		}
		dest |= reach
	}
	return b.restrict(p, g, dest)
}

func (b *Board) knightMoves(p Piece, g *guard) Bitboard {
	if g.pins[p.Square] != NotPinned {
		return Empty
	}
	return b.restrict(p, g, b.tables.Knight[p.Square]&^b.Occupied[p.Color])
}

// kingMoves is adjacency minus own pieces minus attacked squares, plus
// castling. The check mask does not apply to the king.
func (b *Board) kingMoves(p Piece, g *guard) Bitboard {
	dest := b.tables.King[p.Square] &^ b.Occupied[p.Color] &^ g.attacked
	if g.checkers != 0 {
		return dest
	}
	for _, cs := range castles {
		if cs.color != p.Color || cs.king != p.Square || b.castling&cs.right == 0 {
			continue
		}
		rook := b.squares[cs.rook]
		if rook.Type != Rook || rook.Color != p.Color {
			continue
		}
		if b.AllOccupied&cs.vacant != 0 || g.attacked&cs.transit != 0 {
			continue
		}
		dest |= SquareBB(cs.kingTo)
	}
	return dest
}

// pawnMoves appends the pawn's moves: diagonal captures, the single push,
// the double push from the start rank and en passant. A pawn one step
// from the last rank yields one Move per promotion piece.
func (b *Board) pawnMoves(p Piece, g *guard, moves []Move) []Move {
	t := b.tables
	us, from := p.Color, p.Square
	empty := ^b.AllOccupied

	push := t.PawnPush[us][from] & empty
	dest := (t.PawnCapture[us][from] & b.Occupied[us.Other()]) | push
	if push != 0 && from.RelativeRank(us) == 1 {
		dest |= t.PawnPush[us][push.LSB()] & empty
	}
	dest = b.restrict(p, g, dest)

	if ep := b.enPassantFor(us); t.PawnCapture[us][from]&ep != 0 && b.enPassantSafe(p, ep.LSB()) {
		dest |= ep
	}

	if dest == 0 {
		return moves
	}
	if from.RelativeRank(us) == 6 {
		for _, pt := range promotionPieces {
			moves = append(moves, Move{Piece: p, Dest: dest, Promotion: pt})
		}
		return moves
	}
	return append(moves, Move{Piece: p, Dest: dest})
}

// enPassantFor returns the en passant target available to c, if any.
func (b *Board) enPassantFor(c Color) Bitboard {
	if c != b.SideToMove || b.capture != EnPassantSentinel {
		return Empty
	}
	target := b.tables.EnPassant[c][b.epFile]
	victim := b.enPassantVictim(c, target.LSB())
	if b.AllOccupied&target != 0 {
		return Empty
	}
	if v := b.squares[victim]; v.Type != Pawn || v.Color != c.Other() {
		return Empty
	}
	return target
}

// enPassantVictim returns the square of the pawn captured en passant.
func (b *Board) enPassantVictim(c Color, target Square) Square {
	if c == White {
		return target - 8
	}
	return target + 8
}

// enPassantSafe plays the capture on a scratch occupancy and checks that
// no enemy piece then attacks the king. This covers pins, check evasion by
// capturing the checker, and the rank discovered by removing both pawns.
func (b *Board) enPassantSafe(p Piece, target Square) bool {
	king := b.KingSquare(p.Color)
	if king == NoSquare {
		return true
	}
	victim := b.enPassantVictim(p.Color, target)
	occupied := b.AllOccupied&^SquareBB(p.Square)&^SquareBB(victim) | SquareBB(target)
	for _, sq := range b.roster[p.Color.Other()] {
		if sq == victim {
			continue
		}
		if b.pieceAttacks(b.squares[sq], occupied).IsSet(king) {
			return false
		}
	}
	return true
}

// validate logs inconsistencies between the slots, rosters and occupancy.
func (b *Board) validate(c Color) {
	var occ Bitboard
	kings := 0
	for _, sq := range b.roster[c] {
		p := b.squares[sq]
		if p.Color != c || p.Square != sq {
			log.Printf("MOVEGEN FATAL: %v roster entry %v holds %+v", c, sq, p)
		}
		if p.Type == King {
			kings++
		}
		occ |= SquareBB(sq)
	}
	if occ != b.Occupied[c] {
		log.Printf("MOVEGEN FATAL: %v roster %x disagrees with occupancy %x", c, uint64(occ), uint64(b.Occupied[c]))
	}
	if kings != 1 {
		log.Printf("MOVEGEN FATAL: %v has %d kings", c, kings)
	}
}

// HasMoves reports whether the side to move has any move.
func (b *Board) HasMoves() bool {
	return len(b.Generate(b.SideToMove)) > 0
}

// IsCheckmate reports whether the side to move is in check with no moves.
func (b *Board) IsCheckmate() bool {
	return b.InCheck() && !b.HasMoves()
}

// IsStalemate reports whether the side to move has no moves and is not in
// check.
func (b *Board) IsStalemate() bool {
	return !b.InCheck() && !b.HasMoves()
}
