package board

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes each side's roster as "<type code>, <square index>" lines
// under a "white" and a "black" heading. It is a diagnostic format only.
func (b *Board) Dump(w io.Writer) error {
	for c := White; c <= Black; c++ {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
		for _, sq := range b.roster[c] {
			if _, err := fmt.Fprintf(w, "%d, %d\n", b.squares[sq].Type, sq); err != nil {
				return err
			}
		}
	}
	return nil
}

// String returns a visual representation of the position.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(b.squares[NewSquare(file, rank)].Letter())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", b.EnPassantTarget())
	fmt.Fprintf(&sb, "Fifty-move: %d\n", b.fifty)
	fmt.Fprintf(&sb, "In check: %t\n", b.InCheck())
	fmt.Fprintf(&sb, "Hash: %016x\n", b.Hash())
	return sb.String()
}
