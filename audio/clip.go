package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Format is an encoded clip container.
type Format uint8

const (
	FormatPCM Format = iota
	FormatWAV
	FormatMP3
)

// Sniff guesses a clip's format from its first bytes. Anything unrecognised
// is treated as raw PCM in the context's native format.
func Sniff(b []byte) Format {
	switch {
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WAVE":
		return FormatWAV
	case len(b) >= 3 && string(b[:3]) == "ID3":
		return FormatMP3
	case len(b) >= 2 && b[0] == 0xff && b[1]&0xe0 == 0xe0:
		return FormatMP3
	}
	return FormatPCM
}

// ClipPlayer plays one-off encoded clips, such as speech from a TTS
// service, on the shared audio context.
type ClipPlayer struct {
	ctx  *audio.Context
	poll time.Duration
}

func NewClipPlayer(ctx *audio.Context) *ClipPlayer {
	return &ClipPlayer{ctx: ctx, poll: 20 * time.Millisecond}
}

// Play decodes b and blocks until playback finishes or ctx is done, in which
// case the clip stops at once and ctx's error is returned.
func (p *ClipPlayer) Play(ctx context.Context, b []byte) error {
	player, err := p.newPlayer(b)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Play()
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
			if !player.IsPlaying() {
				return nil
			}
		}
	}
}

func (p *ClipPlayer) newPlayer(b []byte) (*audio.Player, error) {
	var (
		stream io.Reader
		err    error
	)
	reader := bytes.NewReader(b)
	switch Sniff(b) {
	case FormatWAV:
		stream, err = wav.DecodeWithSampleRate(p.ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("audio: decode wav: %w", err)
		}
	case FormatMP3:
		stream, err = mp3.DecodeWithSampleRate(p.ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("audio: decode mp3: %w", err)
		}
	default:
		return p.ctx.NewPlayerFromBytes(b), nil
	}
	return p.ctx.NewPlayer(stream)
}
