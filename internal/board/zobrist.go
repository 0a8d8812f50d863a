package board

// Zobrist keys for position hashing, drawn from a fixed-seed PRNG so keys
// are stable across runs and can be persisted.
var (
	zobristPiece      [2][7][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // one per file
	zobristCastling   [16]uint64       // all castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64*
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := King; pt <= Pawn; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist key of the position from scratch. The en
// passant file only contributes while a pawn of the side to move stands
// next to the pawn that just advanced.
func (b *Board) Hash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for _, sq := range b.roster[c] {
			hash ^= zobristPiece[c][b.squares[sq].Type][sq]
		}
	}
	if b.SideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[b.castling]
	if b.enPassantClaimable() {
		hash ^= zobristEnPassant[b.epFile]
	}
	return hash
}

func (b *Board) enPassantClaimable() bool {
	target := b.enPassantFor(b.SideToMove)
	if target == Empty {
		return false
	}
	us := b.SideToMove
	for _, sq := range b.tables.PawnCapture[us.Other()][target.LSB()].Squares() {
		if p := b.squares[sq]; p.Type == Pawn && p.Color == us {
			return true
		}
	}
	return false
}
