package board

import (
	"fmt"
	"strings"
)

// Move is every destination of one piece at once. A pawn reaching the last
// rank yields four Moves that differ only in Promotion.
type Move struct {
	Piece     Piece // the mover as it stood when the move was generated
	Dest      Bitboard
	Promotion PieceType // NoPieceType unless promoting
}

// Count returns the number of destination squares.
func (m Move) Count() int {
	return m.Dest.PopCount()
}

// String lists the move in a compact debug form, e.g. "Ne2:c3,g3".
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteByte(m.Piece.Letter())
	sb.WriteString(m.Piece.Square.String())
	if m.Promotion != NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	sb.WriteByte(':')
	for i, sq := range m.Dest.Squares() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(sq.String())
	}
	return sb.String()
}

// Ply encodes a single from/to step in 16 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flags (0=normal, 1=promotion, 2=en passant, 3=castling)
type Ply uint16

// Ply flags
const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoPly represents an invalid or null ply.
const NoPly Ply = 0

// NewPly creates a normal ply.
func NewPly(from, to Square) Ply {
	return Ply(from) | Ply(to)<<6
}

// NewPromotion creates a promotion ply. promo must be Knight, Bishop,
// Rook or Queen.
func NewPromotion(from, to Square, promo PieceType) Ply {
	return Ply(from) | Ply(to)<<6 | Ply(Knight-promo)<<12 | Ply(FlagPromotion)
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Ply {
	return Ply(from) | Ply(to)<<6 | Ply(FlagEnPassant)
}

// NewCastling creates a castling ply, encoded as the king's step.
func NewCastling(from, to Square) Ply {
	return Ply(from) | Ply(to)<<6 | Ply(FlagCastling)
}

// From returns the origin square.
func (m Ply) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Ply) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the ply flag.
func (m Ply) Flag() uint16 {
	return uint16(m) & 0xC000
}

// Promotion returns the promotion piece, NoPieceType if not a promotion.
func (m Ply) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return Knight - PieceType((m>>12)&3)
}

// IsPromotion reports whether the ply promotes a pawn.
func (m Ply) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsEnPassant reports whether the ply is an en passant capture.
func (m Ply) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCastling reports whether the ply is a castling king step.
func (m Ply) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// String returns the UCI form, e.g. "e2e4" or "e7e8q".
func (m Ply) String() string {
	if m == NoPly {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Letter())
	}
	return s
}

// Plies expands a Move into one Ply per destination square, tagging en
// passant captures and castling steps from the board's current state.
func (b *Board) Plies(m Move) []Ply {
	from := m.Piece.Square
	ep := b.EnPassantTarget()
	plies := make([]Ply, 0, m.Count())
	for dest := m.Dest; dest != 0; {
		to := dest.PopLSB()
		switch {
		case m.Promotion != NoPieceType:
			plies = append(plies, NewPromotion(from, to, m.Promotion))
		case m.Piece.Type == Pawn && to == ep && to.File() != from.File():
			plies = append(plies, NewEnPassant(from, to))
		case m.Piece.Type == King && absInt(to.File()-from.File()) == 2:
			plies = append(plies, NewCastling(from, to))
		default:
			plies = append(plies, NewPly(from, to))
		}
	}
	return plies
}

// LegalPlies generates and expands every move of the side to move.
func (b *Board) LegalPlies() []Ply {
	var plies []Ply
	for _, m := range b.Generate(b.SideToMove) {
		plies = append(plies, b.Plies(m)...)
	}
	return plies
}

// ParsePly resolves a UCI string against the side to move's moves.
func (b *Board) ParsePly(s string) (Ply, error) {
	for _, p := range b.LegalPlies() {
		if p.String() == s {
			return p, nil
		}
	}
	return NoPly, fmt.Errorf("no legal move %q", s)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
