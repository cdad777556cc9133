package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type recordingPlayer struct {
	mu    sync.Mutex
	clips [][]byte
}

func (p *recordingPlayer) Play(_ context.Context, clip []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clips = append(p.clips, clip)
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPPlaysAudioReply(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = gjson.GetBytes(body, "text").String()
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFFclip"))
	}))
	defer srv.Close()

	player := &recordingPlayer{}
	h := NewHTTP(srv.URL, time.Second, player)
	require.NoError(t, h.Speak(context.Background(), "Welcome to S.A.V.E."))

	assert.Equal(t, "Welcome to S.A.V.E.", got)
	require.Len(t, player.clips, 1)
	assert.Equal(t, []byte("RIFFclip"), player.clips[0])
}

func TestHTTPDecodesJSONReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"audio":"`+base64.StdEncoding.EncodeToString([]byte("ID3data"))+`"}`)
	}))
	defer srv.Close()

	clip, err := NewHTTP(srv.URL, time.Second, nil).Fetch(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3data"), clip)
}

func TestHTTPRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ID3ok"))
	}))
	defer srv.Close()

	clip, err := NewHTTP(srv.URL, time.Second, nil).Fetch(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3ok"), clip)
	assert.EqualValues(t, 2, calls.Load())
}

func TestHTTPClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"voice not found"}`)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, time.Second, nil).Fetch(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not found")
	assert.EqualValues(t, 1, calls.Load())
}

func TestHTTPWithoutEndpoint(t *testing.T) {
	err := NewHTTP("", time.Second, &recordingPlayer{}).Speak(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCommandMissingBinary(t *testing.T) {
	err := NewCommand("definitely-not-a-tts-binary").Speak(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCommandPassesDashedTextAsText(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	out := filepath.Join(t.TempDir(), "args")
	cmd := NewCommand("/bin/sh", "-c", `printf '%s\n' "$@" > "$0"`, out)
	require.True(t, cmd.Available())

	require.NoError(t, cmd.Speak(context.Background(), "-v hello"))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "--\n-v hello\n", string(got))
}

func TestFallbackOrder(t *testing.T) {
	var order []string
	fail := SpeakerFunc(func(context.Context, string) error {
		order = append(order, "primary")
		return errors.New("offline")
	})
	ok := SpeakerFunc(func(context.Context, string) error {
		order = append(order, "secondary")
		return nil
	})

	require.NoError(t, NewFallback(quiet(), fail, ok).Speak(context.Background(), "x"))
	assert.Equal(t, []string{"primary", "secondary"}, order)
}

func TestFallbackStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	second := false
	first := SpeakerFunc(func(context.Context, string) error {
		cancel()
		return context.Canceled
	})
	next := SpeakerFunc(func(context.Context, string) error {
		second = true
		return nil
	})

	err := NewFallback(quiet(), first, next).Speak(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, second)
}

func TestFallbackAllFail(t *testing.T) {
	fail := SpeakerFunc(func(context.Context, string) error { return errors.New("nope") })
	err := NewFallback(quiet(), fail, fail).Speak(context.Background(), "x")
	assert.ErrorContains(t, err, "all speakers failed")
}

func TestSubtitleDuration(t *testing.T) {
	s := Subtitle{PerRune: 10 * time.Millisecond, Min: 50 * time.Millisecond}
	assert.Equal(t, 50*time.Millisecond, s.Duration("hi"))
	assert.Equal(t, 100*time.Millisecond, s.Duration("0123456789"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Speak(ctx, "anything"), context.Canceled)
}

func TestNarratorCutsOffPreviousLine(t *testing.T) {
	started := make(chan string, 2)
	speaker := SpeakerFunc(func(ctx context.Context, text string) error {
		started <- text
		<-ctx.Done()
		return ctx.Err()
	})
	n := NewNarrator(speaker, quiet())

	first := make(chan error, 1)
	n.Say(context.Background(), "one", func(err error) { first <- err })
	assert.Equal(t, "one", <-started)

	second := make(chan error, 1)
	n.Say(context.Background(), "two", func(err error) { second <- err })

	select {
	case err := <-first:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("first line was not cut off")
	}
	assert.Equal(t, "two", <-started)
	assert.Equal(t, "two", n.Line())

	n.Stop()
	assert.Empty(t, n.Line())
	select {
	case err := <-second:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("stop did not cut off the line")
	}
}
