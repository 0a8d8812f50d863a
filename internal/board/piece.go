package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color. NoColor stays NoColor.
func (c Color) Other() Color {
	if c >= NoColor {
		return NoColor
	}
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType represents the kind of a piece. The numeric values double as
// the 3-bit capture codes stored in a HistoryEntry.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Letter returns the lowercase FEN letter of the type, or '.' for NoPieceType.
func (pt PieceType) Letter() byte {
	if pt > Pawn {
		return '.'
	}
	return ".kqrbnp"[pt]
}

// directions returns the half-open range of ray directions the type slides
// along. Non-sliders return an empty range.
func (pt PieceType) directions() (first, last Direction) {
	switch pt {
	case Bishop:
		return NorthWest, numDirections
	case Rook:
		return West, NorthWest
	case Queen:
		return West, numDirections
	default:
		return 0, 0
	}
}

// slidesAlong reports whether a piece of this type attacks along dir.
func (pt PieceType) slidesAlong(dir Direction) bool {
	first, last := pt.directions()
	return dir >= first && dir < last
}

// Piece is one slot of the board arena.
// Invariant: Color == NoColor exactly when Type == NoPieceType.
type Piece struct {
	Type   PieceType
	Color  Color
	Square Square
}

// emptyPiece returns the vacant slot value for sq.
func emptyPiece(sq Square) Piece {
	return Piece{Type: NoPieceType, Color: NoColor, Square: sq}
}

// IsEmpty reports whether the slot is vacant.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Letter returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Color == White {
		return l - 'a' + 'A'
	}
	return l
}

// pieceFromLetter maps a FEN piece letter to its type and color.
func pieceFromLetter(c byte) (PieceType, Color, bool) {
	switch c {
	case 'K':
		return King, White, true
	case 'Q':
		return Queen, White, true
	case 'R':
		return Rook, White, true
	case 'B':
		return Bishop, White, true
	case 'N':
		return Knight, White, true
	case 'P':
		return Pawn, White, true
	case 'k':
		return King, Black, true
	case 'q':
		return Queen, Black, true
	case 'r':
		return Rook, Black, true
	case 'b':
		return Bishop, Black, true
	case 'n':
		return Knight, Black, true
	case 'p':
		return Pawn, Black, true
	default:
		return NoPieceType, NoColor, false
	}
}
