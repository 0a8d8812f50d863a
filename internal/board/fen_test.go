package board

import (
	"errors"
	"testing"

	"github.com/hailam/chesscore/internal/testutil"
)

func TestParseFENStart(t *testing.T) {
	b := NewStartBoard()

	testutil.AssertEqual(t, b.SideToMove, White)
	testutil.AssertEqual(t, b.Castling(), AllCastling)
	testutil.AssertEqual(t, b.EnPassantTarget(), NoSquare)
	testutil.AssertEqual(t, len(b.Pieces(White)), 16)
	testutil.AssertEqual(t, len(b.Pieces(Black)), 16)
	testutil.AssertEqual(t, b.KingSquare(White), E1)
	testutil.AssertEqual(t, b.KingSquare(Black), E8)
	testutil.AssertEqual(t, b.At(D8), Piece{Type: Queen, Color: Black, Square: D8})
	testutil.AssertTrue(t, b.At(E4).IsEmpty(), "e4 should be empty")
	testutil.AssertEqual(t, b.AllOccupied, Rank1|Rank2|Rank7|Rank8)
	testutil.AssertEqual(t, b.FEN(), StartFEN)
}

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 0 1",
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			b, err := ParseFEN(fen)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, b.FEN(), fen)
		})
	}
}

// Only the first four fields are consumed.
func TestLoadToleratesMissingAndExtraFields(t *testing.T) {
	short, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	testutil.AssertNoError(t, err)
	long, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 12 40 trailing")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, long.Hash(), short.Hash())
	testutil.AssertEqual(t, long.FiftyMove(), 0)
}

func TestLoadEnPassant(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Square
	}{
		{"full square white", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", D6},
		{"full square black", "4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1", D3},
		{"file only", "4k3/8/8/3pP3/8/8/8/4K3 w - d", D6},
		{"upper case file", "4k3/8/8/3pP3/8/8/8/4K3 w - D", D6},
		{"h file", "4k3/8/8/6Pp/8/8/8/4K3 w - h6", H6},
		{"none", "4k3/8/8/3pP3/8/8/8/4K3 w - -", NoSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseFEN(tc.fen)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, b.EnPassantTarget(), tc.want)
			testutil.AssertEqual(t, b.LastCapture(), NoPieceType)
		})
	}
}

func TestLoadCastling(t *testing.T) {
	tests := []struct {
		field string
		want  CastlingRights
	}{
		{"-", NoCastling},
		{"K", WhiteKingSide},
		{"Qk", WhiteQueenSide | BlackKingSide},
		{"kqKQ", AllCastling},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w " + tc.field + " -")
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, b.Castling(), tc.want)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field FENField
		cause error
	}{
		{"empty", "", FieldRecord, ErrFieldCount},
		{"three fields", "8/8/8/8/8/8/8/8 w -", FieldRecord, ErrFieldCount},
		{"seven ranks", "8/8/8/8/8/8/8 w - -", FieldBoard, ErrRankCount},
		{"nine ranks", "8/8/8/8/8/8/8/8/8 w - -", FieldBoard, ErrRankCount},
		{"short rank", "7/8/8/8/8/8/8/8 w - -", FieldBoard, ErrRankWidth},
		{"long rank", "8p/8/8/8/8/8/8/8 w - -", FieldBoard, ErrRankWidth},
		{"digit overflow", "44p/8/8/8/8/8/8/8 w - -", FieldBoard, ErrRankWidth},
		{"bad letter", "4k3/8/8/8/8/8/8/4X3 w - -", FieldBoard, ErrPieceLetter},
		{"digit nine", "9/8/8/8/8/8/8/8 w - -", FieldBoard, ErrPieceLetter},
		{"pawn on rank 8", "P3k3/8/8/8/8/8/8/4K3 w - -", FieldBoard, ErrPawnRank},
		{"pawn on rank 1", "4k3/8/8/8/8/8/8/p3K3 w - -", FieldBoard, ErrPawnRank},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - -", FieldBoard, ErrKingCount},
		{"bad turn", "4k3/8/8/8/8/8/8/4K3 x - -", FieldTurn, ErrTurn},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w KX -", FieldCastling, ErrCastling},
		{"bad ep file", "4k3/8/8/8/8/8/8/4K3 w - i6", FieldEnPassant, ErrEnPassant},
		{"bad ep rank", "4k3/8/8/8/8/8/8/4K3 w - e3", FieldEnPassant, ErrEnPassant},
		{"long ep", "4k3/8/8/8/8/8/8/4K3 w - e66", FieldEnPassant, ErrEnPassant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			testutil.AssertErrorIs(t, err, ErrInvalidFEN)
			testutil.AssertErrorIs(t, err, tc.cause)

			var fenErr *FENError
			if !errors.As(err, &fenErr) {
				t.Fatalf("error %v is not a *FENError", err)
			}
			testutil.AssertEqual(t, fenErr.Field, tc.field)
		})
	}
}

// A rejected FEN must not touch the board it was loaded into.
func TestLoadErrorLeavesBoardUnchanged(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 1")
	testutil.AssertNoError(t, err)
	fen, hash := b.FEN(), b.Hash()

	bad := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkZ -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNZ w KQkq -",
	}
	for _, fen := range bad {
		testutil.AssertError(t, b.Load(fen), fen)
	}

	testutil.AssertEqual(t, b.FEN(), fen)
	testutil.AssertEqual(t, b.Hash(), hash)
}

func TestLoadResetsHistory(t *testing.T) {
	b := NewStartBoard()
	m, err := b.ParsePly("e2e4")
	testutil.AssertNoError(t, err)
	b.MakeMove(m)
	testutil.AssertEqual(t, b.Depth(), 1)

	testutil.AssertNoError(t, b.Load(StartFEN))
	testutil.AssertEqual(t, b.Depth(), 0)
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{"a1", A1, false},
		{"h8", H8, false},
		{"e4", E4, false},
		{"i1", NoSquare, true},
		{"a9", NoSquare, true},
		{"e", NoSquare, true},
	}

	for _, tc := range tests {
		got, err := ParseSquare(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSquare(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		testutil.AssertEqual(t, got, tc.want, "ParseSquare(%q)", tc.in)
	}
}
