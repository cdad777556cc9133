package capture

import (
	"context"
	"image"
	"image/color"
)

// Denied is a camera the player never lets in.
type Denied struct{}

func (Denied) Open(context.Context) (Stream, error) { return nil, ErrDenied }

// Static serves the same image forever. With a nil Image it renders a
// test card, which is what runs when no real device is configured.
type Static struct {
	Image image.Image
}

func (s Static) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img := s.Image
	if img == nil {
		img = TestCard(320, 240)
	}
	return staticStream{img: img}, nil
}

type staticStream struct {
	img image.Image
}

func (s staticStream) Still(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.img, nil
}

func (staticStream) Close() error { return nil }

// TestCard draws vertical grey bars with a dark band, enough to read as
// "a camera frame" on the mirror screen.
func TestCard(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40 + (x*6/w)*35)
			if y > h*2/3 && y < h*5/6 {
				v /= 3
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}
