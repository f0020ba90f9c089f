// Package frame draws the state of a game as a monochrome text image. It is shared by the
// GIF and MJPEG encoders.
package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/connect4/game"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Game Number: 10000, Move: 42`
	extraLines      = 3 // game name, game number, winner
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// Palette is the palette of every frame.
var Palette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Renderer draws game.MetaStates. The frame size is fixed by the first state drawn.
type Renderer struct {
	H, W int
	font.Drawer

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// New creates a Renderer whose frames are at most h by w pixels.
func New(h, w int) *Renderer {
	return &Renderer{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,
		Drawer: font.Drawer{
			Src: image.Black,
		},
	}
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

func (r *Renderer) init(repr []string) {
	r.Drawer.Face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	maxW := font.MeasureString(r.Face, dummyLongString).Ceil()
	for _, l := range repr {
		maxW = maxInt(maxW, font.MeasureString(r.Face, l).Ceil())
	}
	w := maxW + 2*r.padW
	h := (len(repr)+extraLines)*lineHeight() + 2*r.padH

	w = minInt(w, r.maxW)
	h = minInt(h, r.maxH)
	if w == r.maxW {
		r.padW = 0
	}
	if h == r.maxH {
		r.padH = 0
	}
	r.H = h
	r.W = w
	r.initialized = true
}

// Render draws the board, the name of the game, the game and move numbers and, if the game
// has ended, the result. It reports whether the game has ended.
func (r *Renderer) Render(ms game.MetaState) (im *image.Paletted, ended bool) {
	g := ms.State()
	repr := strings.Split(strings.TrimRight(fmt.Sprintf("%s", g), "\n"), "\n")
	if !r.initialized {
		r.init(repr)
	}

	im = image.NewPaletted(image.Rect(0, 0, r.W, r.H), Palette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	r.Dst = im

	dy := lineHeight()
	y := r.padH + dy
	line := func(s string) {
		r.Dot = fixed.P(r.padW, y)
		r.DrawString(s)
		y += dy
	}

	for _, s := range repr {
		line(s)
	}
	line(ms.Name())
	line(fmt.Sprintf("Game Number: %d, Move: %d", ms.GameNumber(), g.MoveNumber()))

	var winner game.Player
	if ended, winner = g.Ended(); ended {
		if winner == game.NoPlayer {
			line("Draw")
		} else {
			line(fmt.Sprintf("Winner: %s", winner))
		}
	}
	return im, ended
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
