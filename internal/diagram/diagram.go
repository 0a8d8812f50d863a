// Package diagram renders a board as an SVG or PNG picture for debugging
// move generation: highlighted destination squares, checkers and pieces.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultSquareSize is the edge of one square in pixels.
const DefaultSquareSize = 48

// Options controls what is drawn.
type Options struct {
	SquareSize int            // 0 means DefaultSquareSize
	Highlight  board.Bitboard // e.g. a Move's destinations
	Marked     board.Bitboard // e.g. the checkers
	Flip       bool           // draw from black's side
}

// Colors
var (
	lightSquare     = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkSquare      = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	lightHighlight  = color.RGBA{0xcd, 0xd2, 0x6a, 0xff}
	darkHighlight   = color.RGBA{0xaa, 0xa2, 0x3a, 0xff}
	markedSquare    = color.RGBA{0xe0, 0x5a, 0x4f, 0xff}
	whitePieceFill  = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	blackPieceFill  = color.RGBA{0x30, 0x30, 0x30, 0xff}
	pieceOutline    = color.RGBA{0x10, 0x10, 0x10, 0xff}
	whitePieceLabel = color.RGBA{0x10, 0x10, 0x10, 0xff}
	blackPieceLabel = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return DefaultSquareSize
	}
	return o.SquareSize
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if o.Flip {
		file, rank = 7-file, 7-rank
	}
	size := o.squareSize()
	return file * size, rank * size
}

func (o Options) squareColor(sq board.Square) color.RGBA {
	light := (sq.File()+sq.Rank())%2 == 1
	switch {
	case o.Marked.IsSet(sq):
		return markedSquare
	case o.Highlight.IsSet(sq) && light:
		return lightHighlight
	case o.Highlight.IsSet(sq):
		return darkHighlight
	case light:
		return lightSquare
	default:
		return darkSquare
	}
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// SVG writes the diagram with piece letters as text.
func SVG(w io.Writer, b *board.Board, opts Options) error {
	ew := &errWriter{w: w}
	drawSVG(ew, b, opts, true)
	return ew.err
}

// drawSVG emits the squares and pieces. Text is optional because the
// rasterizer used for PNG output does not render it.
func drawSVG(w io.Writer, b *board.Board, opts Options, labels bool) {
	size := opts.squareSize()
	edge := 8 * size

	canvas := svg.New(w)
	canvas.Startview(edge, edge, 0, 0, edge, edge)
	canvas.Title(b.FEN())

	canvas.Gid("squares")
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opts.origin(sq)
		canvas.Rect(x, y, size, size, "fill:"+hex(opts.squareColor(sq)))
	}
	canvas.Gend()

	canvas.Gid("pieces")
	for c := board.White; c <= board.Black; c++ {
		fill, label := whitePieceFill, whitePieceLabel
		if c == board.Black {
			fill, label = blackPieceFill, blackPieceLabel
		}
		for _, sq := range b.Pieces(c) {
			x, y := opts.origin(sq)
			cx, cy := x+size/2, y+size/2
			canvas.Circle(cx, cy, size*3/8,
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", hex(fill), hex(pieceOutline), max(1, size/24)))
			if labels {
				canvas.Text(cx, cy+size/8, string(b.At(sq).Letter()),
					fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s", size/2, hex(label)))
			}
		}
	}
	canvas.Gend()

	canvas.End()
}

// Image rasterizes the diagram and draws piece letters with a bitmap
// font.
func Image(b *board.Board, opts Options) (*image.RGBA, error) {
	var buf bytes.Buffer
	drawSVG(&buf, b, opts, false)

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse diagram: %w", err)
	}

	edge := 8 * opts.squareSize()
	icon.SetTarget(0, 0, float64(edge), float64(edge))

	rgba := image.NewRGBA(image.Rect(0, 0, edge, edge))
	scanner := rasterx.NewScannerGV(edge, edge, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(edge, edge, scanner)
	icon.Draw(raster, 1.0)

	drawLabels(rgba, b, opts)
	return rgba, nil
}

// PNG writes the rasterized diagram.
func PNG(w io.Writer, b *board.Board, opts Options) error {
	img, err := Image(b, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawLabels(dst *image.RGBA, b *board.Board, opts Options) {
	size := opts.squareSize()
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Face: face}

	for c := board.White; c <= board.Black; c++ {
		d.Src = image.NewUniform(whitePieceLabel)
		if c == board.Black {
			d.Src = image.NewUniform(blackPieceLabel)
		}
		for _, sq := range b.Pieces(c) {
			x, y := opts.origin(sq)
			s := string(b.At(sq).Letter())
			width := d.MeasureString(s).Round()
			d.Dot = fixed.P(x+(size-width)/2, y+(size+face.Ascent-face.Descent)/2)
			d.DrawString(s)
		}
	}
}
