package gif

import (
	"image/gif"
	"io"

	"github.com/gorgonia/connect4/encoding/frame"
	"github.com/gorgonia/connect4/game"
	"github.com/pkg/errors"
)

// endDelay is how long the last frame of a game stays up, in 100ths of a second.
const endDelay = 300

// Encoder records every state it is given as a frame of an animated GIF. It implements
// connect4.OutputEncoder.
type Encoder struct {
	*frame.Renderer
	io.Writer

	out *gif.GIF
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: frame.New(h, w),
		out:      &gif.GIF{LoopCount: -1},
	}
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	im, ended := enc.Render(ms)
	var delay int
	if ended {
		delay = endDelay
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Frames is the number of frames recorded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("gif encoder has no writer")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}
