package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const maxClipBytes = 16 << 20

// Player plays an encoded audio clip and blocks until it ends or ctx is
// done. *audio.ClipPlayer implements it.
type Player interface {
	Play(ctx context.Context, clip []byte) error
}

// HTTP speaks through a networked TTS service. It posts {"text": ...} and
// accepts either an audio body (wav or mp3) or a JSON body carrying the
// clip base64-encoded under "audio".
type HTTP struct {
	URL    string
	Voice  string
	Client *http.Client
	Player Player
	// Tries bounds attempts on transient failures.
	Tries uint
}

func NewHTTP(url string, timeout time.Duration, player Player) *HTTP {
	return &HTTP{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Player: player,
		Tries:  3,
	}
}

func (h *HTTP) Speak(ctx context.Context, text string) error {
	if h.URL == "" || h.Player == nil {
		return ErrUnavailable
	}
	clip, err := h.Fetch(ctx, text)
	if err != nil {
		return err
	}
	return h.Player.Play(ctx, clip)
}

// Fetch synthesises text and returns the encoded clip.
func (h *HTTP) Fetch(ctx context.Context, text string) ([]byte, error) {
	body, err := sjson.SetBytes(nil, "text", text)
	if err != nil {
		return nil, fmt.Errorf("speech: encode request: %w", err)
	}
	if h.Voice != "" {
		if body, err = sjson.SetBytes(body, "voice", h.Voice); err != nil {
			return nil, fmt.Errorf("speech: encode request: %w", err)
		}
	}

	tries := h.Tries
	if tries == 0 {
		tries = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	return backoff.Retry(ctx, func() ([]byte, error) {
		return h.post(ctx, body)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))
}

func (h *HTTP) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("speech: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav, audio/mpeg, application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("speech: post %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxClipBytes))
	if err != nil {
		return nil, fmt.Errorf("speech: read reply: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("speech: tts status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		msg := gjson.GetBytes(data, "error").String()
		return nil, backoff.Permanent(fmt.Errorf("speech: tts status %d: %s", resp.StatusCode, msg))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		field := gjson.GetBytes(data, "audio")
		if !field.Exists() {
			return nil, backoff.Permanent(fmt.Errorf("speech: tts reply has no audio"))
		}
		clip, err := base64.StdEncoding.DecodeString(field.String())
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("speech: decode audio: %w", err))
		}
		return clip, nil
	}
	if len(data) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("speech: empty tts reply"))
	}
	return data, nil
}
