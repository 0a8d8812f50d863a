package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN returns a new board loaded from fen.
func ParseFEN(fen string) (*Board, error) {
	b := New()
	if err := b.Load(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// NewStartBoard returns a board with the starting position.
func NewStartBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Load replaces the position with the one described by fen. Only the
// board, turn, castling and en passant fields are consumed; halfmove and
// fullmove fields may follow and are ignored. On error the board is left
// unchanged and the error is a *FENError.
func (b *Board) Load(fen string) error {
	fields := strings.Split(strings.TrimSpace(fen), " ")
	if len(fields) < 4 {
		return fenError(FieldRecord, fen, ErrFieldCount)
	}

	scratch := New()
	if err := scratch.parsePlacement(fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		scratch.SideToMove = White
	case "b":
		scratch.SideToMove = Black
	default:
		return fenError(FieldTurn, fields[1], ErrTurn)
	}

	if err := scratch.parseCastling(fields[2]); err != nil {
		return err
	}
	if err := scratch.parseEnPassant(fields[3]); err != nil {
		return err
	}

	scratch.refresh()
	*b = *scratch
	return nil
}

// parsePlacement fills the slots from the board field, rank 8 first.
func (b *Board) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenError(FieldBoard, placement, ErrRankCount)
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fenError(FieldBoard, rankStr, ErrRankWidth)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			pt, color, ok := pieceFromLetter(c)
			if !ok {
				return fenError(FieldBoard, string(c), ErrPieceLetter)
			}
			if pt == Pawn && (rank == 0 || rank == 7) {
				return fenError(FieldBoard, rankStr, ErrPawnRank)
			}
			if pt == King && b.KingSquare(color) != NoSquare {
				return fenError(FieldBoard, placement, ErrKingCount)
			}
			b.place(pt, color, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fenError(FieldBoard, rankStr, ErrRankWidth)
		}
	}

	return nil
}

// parseCastling tests for each rights letter independently.
func (b *Board) parseCastling(castling string) error {
	if castling == "-" {
		b.castling = NoCastling
		return nil
	}
	if castling == "" {
		return fenError(FieldCastling, castling, ErrCastling)
	}

	for i := 0; i < len(castling); i++ {
		switch castling[i] {
		case 'K':
			b.castling |= WhiteKingSide
		case 'Q':
			b.castling |= WhiteQueenSide
		case 'k':
			b.castling |= BlackKingSide
		case 'q':
			b.castling |= BlackQueenSide
		default:
			return fenError(FieldCastling, castling, ErrCastling)
		}
	}

	return nil
}

// parseEnPassant accepts "-", a file letter, or a file letter plus the
// rank the side to move would capture on.
func (b *Board) parseEnPassant(ep string) error {
	if ep == "-" {
		return nil
	}
	if len(ep) == 0 || len(ep) > 2 {
		return fenError(FieldEnPassant, ep, ErrEnPassant)
	}

	file := int(ep[0]|0x20) - 'a'
	if file < 0 || file > 7 {
		return fenError(FieldEnPassant, ep, ErrEnPassant)
	}
	if len(ep) == 2 {
		want := byte('6')
		if b.SideToMove == Black {
			want = '3'
		}
		if ep[1] != want {
			return fenError(FieldEnPassant, ep, ErrEnPassant)
		}
	}

	b.capture = EnPassantSentinel
	b.epFile = uint8(file)
	return nil
}

// FEN returns the position in FEN, with the fifty-move counter as the
// halfmove clock and a fullmove number of 1.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassantTarget().String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(b.fifty)))
	sb.WriteString(" 1")

	return sb.String()
}
