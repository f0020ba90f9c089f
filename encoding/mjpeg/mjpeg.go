package mjpeg

import (
	"bytes"
	"image/jpeg"
	"net/http"

	"github.com/gorgonia/connect4/encoding/frame"
	"github.com/gorgonia/connect4/game"
	"github.com/mattn/go-mjpeg"
	"github.com/pkg/errors"
)

// Encoder streams every state it is given as a Motion JPEG over HTTP. It implements
// connect4.OutputEncoder.
type Encoder struct {
	*frame.Renderer

	stream *mjpeg.Stream
	last   []byte
}

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc.stream.ServeHTTP(w, r)
}

// NewEncoder with height and width
func NewEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: frame.New(h, w),
		stream:   mjpeg.NewStream(),
	}
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	im, _ := enc.Render(ms)
	var b bytes.Buffer
	if err := jpeg.Encode(&b, im, nil); err != nil {
		return errors.Wrap(err, "Unable to encode frame")
	}
	enc.last = b.Bytes()
	return errors.Wrap(enc.stream.Update(enc.last), "Unable to update stream")
}

// Last returns the last JPEG frame sent, if any.
func (enc *Encoder) Last() []byte { return enc.last }

func (enc *Encoder) Flush() error { return nil }
