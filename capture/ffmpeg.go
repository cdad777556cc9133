package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
)

// FFmpeg reads frames from a local video device by shelling out to ffmpeg.
// It has no persistent process; each Still spawns one short capture.
type FFmpeg struct {
	Path   string
	Device string
}

func NewFFmpeg(path, device string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	if device == "" {
		device = defaultDevice()
	}
	return &FFmpeg{Path: path, Device: device}
}

func defaultDevice() string {
	switch runtime.GOOS {
	case "darwin":
		return "0"
	case "windows":
		return "video=Integrated Camera"
	}
	return "/dev/video0"
}

func inputFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	}
	return "v4l2"
}

func (f *FFmpeg) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(f.Path); err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrNoCamera, f.Path)
	}
	if inputFormat() == "v4l2" {
		fh, err := os.Open(f.Device)
		switch {
		case errors.Is(err, fs.ErrPermission):
			return nil, ErrDenied
		case err != nil:
			return nil, fmt.Errorf("%w: %v", ErrNoCamera, err)
		}
		_ = fh.Close()
	}
	return &ffmpegStream{cfg: *f}, nil
}

type ffmpegStream struct {
	cfg FFmpeg
}

func (s *ffmpegStream) Still(ctx context.Context) (image.Image, error) {
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.cfg.Path,
		"-hide_banner", "-loglevel", "error",
		"-f", inputFormat(), "-i", s.cfg.Device,
		"-frames:v", "1", "-f", "image2pipe", "-vcodec", "png", "-")
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if bytes.Contains(stderr.Bytes(), []byte("Permission denied")) {
			return nil, ErrDenied
		}
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

func (s *ffmpegStream) Close() error { return nil }
