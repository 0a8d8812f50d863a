package board

// HistoryEntry is the packed reversible state of one ply:
//
//	bits 0-3   castling rights (white K, white Q, black K, black Q)
//	bits 4-6   en passant file, meaningful only with the sentinel below
//	bits 7-9   captured piece type, or EnPassantSentinel
//	bits 10-15 fifty-move counter
type HistoryEntry uint16

const (
	// EnPassantSentinel in the capture field means the last move captured
	// nothing and enabled an en passant reply. A capture and a double push
	// never happen in the same move.
	EnPassantSentinel uint8 = 0b111

	// FiftyMoveLimit is the largest counter value the entry can hold; the
	// board saturates there.
	FiftyMoveLimit uint8 = 0b111111
)

const (
	castlingShift = 0
	epFileShift   = 4
	captureShift  = 7
	fiftyShift    = 10

	castlingMask = 0b1111
	epFileMask   = 0b111
	captureMask  = 0b111
	fiftyMask    = 0b111111
)

// HistoryState is the unpacked form of a HistoryEntry.
type HistoryState struct {
	Castling CastlingRights
	EPFile   uint8
	Capture  uint8 // PieceType code or EnPassantSentinel
	Fifty    uint8
}

// Encode packs the state. Fields wider than their slot are truncated.
func (s HistoryState) Encode() HistoryEntry {
	return HistoryEntry(uint16(s.Castling)&castlingMask)<<castlingShift |
		HistoryEntry(uint16(s.EPFile)&epFileMask)<<epFileShift |
		HistoryEntry(uint16(s.Capture)&captureMask)<<captureShift |
		HistoryEntry(uint16(s.Fifty)&fiftyMask)<<fiftyShift
}

// Decode unpacks the entry.
func (e HistoryEntry) Decode() HistoryState {
	return HistoryState{
		Castling: CastlingRights(e >> castlingShift & castlingMask),
		EPFile:   uint8(e >> epFileShift & epFileMask),
		Capture:  uint8(e >> captureShift & captureMask),
		Fifty:    uint8(e >> fiftyShift & fiftyMask),
	}
}

// state returns the board's reversible fields.
func (b *Board) state() HistoryState {
	return HistoryState{
		Castling: b.castling,
		EPFile:   b.epFile,
		Capture:  b.capture,
		Fifty:    b.fifty,
	}
}

func (b *Board) setState(s HistoryState) {
	b.castling = s.Castling
	b.epFile = s.EPFile
	b.capture = s.Capture
	b.fifty = s.Fifty
}

// Snapshot pushes the reversible fields. Call it before a move mutates them.
func (b *Board) Snapshot() {
	b.history = append(b.history, b.state().Encode())
}

// Restore pops the last snapshot and writes it back. Restoring with an
// empty stack means make/unmake calls are unbalanced, and it panics with
// ErrHistoryUnderflow.
func (b *Board) Restore() {
	n := len(b.history)
	if n == 0 {
		panic(ErrHistoryUnderflow)
	}
	b.setState(b.history[n-1].Decode())
	b.history = b.history[:n-1]
}

// Depth returns the number of snapshots on the stack.
func (b *Board) Depth() int {
	return len(b.history)
}
