package board

import (
	"golang.org/x/exp/slices"
)

// CastlingRights holds the four castling flags.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota // K
	WhiteQueenSide                           // Q
	BlackKingSide                            // k
	BlackQueenSide                           // q
	NoCastling    CastlingRights = 0
	AllCastling   CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// Board is the mutable position. The 64 slots are allocated once and
// overwritten in place; the per-color rosters hold square indices into the
// slots, so a slot update is visible through both.
//
// A Board is not safe for concurrent use. Use Clone to give each goroutine
// its own copy.
type Board struct {
	tables *AttackTables

	squares [64]Piece
	roster  [2][]Square

	SideToMove Color

	Occupied    [2]Bitboard
	AllOccupied Bitboard

	// Reversible fields, packed into history on every move.
	castling CastlingRights
	epFile   uint8
	capture  uint8
	fifty    uint8
	history  []HistoryEntry

	// Guard state of SideToMove, recomputed after every change.
	attacked [2]Bitboard
	guard    guard
}

// New returns an empty board. It builds the attack tables on first use.
func New() *Board {
	b := &Board{tables: Tables()}
	b.clear()
	return b
}

// Clone returns an independent deep copy, history included.
func (b *Board) Clone() *Board {
	c := *b
	c.roster[White] = slices.Clone(b.roster[White])
	c.roster[Black] = slices.Clone(b.roster[Black])
	c.history = slices.Clone(b.history)
	return &c
}

func (b *Board) clear() {
	for sq := A1; sq <= H8; sq++ {
		b.squares[sq] = emptyPiece(sq)
	}
	b.roster[White] = make([]Square, 0, 16)
	b.roster[Black] = make([]Square, 0, 16)
	b.SideToMove = White
	b.Occupied = [2]Bitboard{}
	b.AllOccupied = Empty
	b.castling = NoCastling
	b.epFile, b.capture, b.fifty = 0, 0, 0
	b.history = b.history[:0]
	b.attacked = [2]Bitboard{}
	b.guard = guard{stopCheck: Universe}
}

// At returns the slot at sq.
func (b *Board) At(sq Square) Piece {
	return b.squares[sq]
}

// Pieces returns the squares of c's pieces. The slice is a copy.
func (b *Board) Pieces(c Color) []Square {
	return slices.Clone(b.roster[c])
}

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights {
	return b.castling
}

// EnPassantTarget returns the square the side to move may capture en
// passant on, or NoSquare.
func (b *Board) EnPassantTarget() Square {
	if b.capture != EnPassantSentinel {
		return NoSquare
	}
	return b.tables.EnPassant[b.SideToMove][b.epFile].LSB()
}

// LastCapture returns the type captured by the last move, NoPieceType if
// none.
func (b *Board) LastCapture() PieceType {
	if b.capture == EnPassantSentinel {
		return NoPieceType
	}
	return PieceType(b.capture)
}

// FiftyMove returns the plies since the last capture or pawn move,
// saturated at FiftyMoveLimit.
func (b *Board) FiftyMove() int {
	return int(b.fifty)
}

// KingSquare returns c's king square, or NoSquare if c has no king.
func (b *Board) KingSquare(c Color) Square {
	for _, sq := range b.roster[c] {
		if b.squares[sq].Type == King {
			return sq
		}
	}
	return NoSquare
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.guard.checkers != 0
}

// Checkers returns the pieces giving check to the side to move.
func (b *Board) Checkers() Bitboard {
	return b.guard.checkers
}

// StopCheck returns the squares a non-king piece of the side to move may
// land on: Universe when not in check, the checker and the squares
// between it and the king in single check, Empty in double check.
func (b *Board) StopCheck() Bitboard {
	return b.guard.stopCheck
}

// Pin returns the axis the piece on sq is pinned along, from the point of
// view of the side to move.
func (b *Board) Pin(sq Square) PinAxis {
	return b.guard.pins[sq]
}

// Attacked returns the squares c attacks. For the opponent of the side to
// move the cached value is returned; it is computed with the mover's king
// lifted off the board.
func (b *Board) Attacked(c Color) Bitboard {
	if c == b.SideToMove.Other() {
		return b.attacked[c]
	}
	attacked, _ := b.attacks(c, b.AllOccupied, NoSquare)
	return attacked
}

// place puts a piece on an empty slot and adds it to its roster.
func (b *Board) place(pt PieceType, c Color, sq Square) {
	b.squares[sq] = Piece{Type: pt, Color: c, Square: sq}
	b.roster[c] = append(b.roster[c], sq)
	b.Occupied[c] |= SquareBB(sq)
	b.AllOccupied |= SquareBB(sq)
}

// remove vacates sq and drops it from its roster.
func (b *Board) remove(sq Square) Piece {
	p := b.squares[sq]
	if p.IsEmpty() {
		return p
	}
	if i := slices.Index(b.roster[p.Color], sq); i >= 0 {
		b.roster[p.Color] = slices.Delete(b.roster[p.Color], i, i+1)
	}
	b.squares[sq] = emptyPiece(sq)
	b.Occupied[p.Color] &^= SquareBB(sq)
	b.AllOccupied &^= SquareBB(sq)
	return p
}

// relocate moves the piece on from to the empty slot to.
func (b *Board) relocate(from, to Square) {
	p := b.squares[from]
	if p.IsEmpty() {
		return
	}
	if i := slices.Index(b.roster[p.Color], from); i >= 0 {
		b.roster[p.Color][i] = to
	}
	p.Square = to
	b.squares[to] = p
	b.squares[from] = emptyPiece(from)
	move := SquareBB(from) | SquareBB(to)
	b.Occupied[p.Color] ^= move
	b.AllOccupied ^= move
}

// refresh recomputes the guard state for the side to move and caches the
// opponent's attacked squares.
func (b *Board) refresh() {
	b.guard = b.computeGuard(b.SideToMove)
	b.attacked[b.SideToMove.Other()] = b.guard.attacked
}
