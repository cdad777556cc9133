// Package config reads the game's settings from SAVE_* environment
// variables, then lets command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/save/state"
)

const envPrefix = "SAVE_"

// Camera device values with special meaning.
const (
	CameraNone = "none"
	CameraTest = "test"
)

type Config struct {
	Debug        bool          `env:"DEBUG"`
	StartScene   string        `env:"START_SCENE"`
	BaseMonitor  bool          `env:"BASE_MONITOR"`
	ContentDir   string        `env:"CONTENT_DIR"`
	TTSURL       string        `env:"TTS_URL"`
	TTSTimeout   time.Duration `env:"TTS_TIMEOUT" envDefault:"8s"`
	LocalTTS     string        `env:"LOCAL_TTS" envDefault:"espeak"`
	FFmpegPath   string        `env:"FFMPEG" envDefault:"ffmpeg"`
	CameraDevice string        `env:"CAMERA"`
	LogLevel     slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	Mute         bool          `env:"MUTE"`
}

// Load parses environ (the process environment when nil) and then args,
// which should not include the program name. -h yields flag.ErrHelp.
func Load(args []string, environ map[string]string, output io.Writer) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable the debug overlay and scene warp (F1, F2)")
	fs.StringVar(&cfg.StartScene, "scene", cfg.StartScene, "scene to start on (debug only)")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "directory whose scene scripts override the embedded ones")
	fs.StringVar(&cfg.TTSURL, "tts", cfg.TTSURL, "text-to-speech endpoint")
	fs.StringVar(&cfg.CameraDevice, "camera", cfg.CameraDevice, `camera device, "none" or "test"`)
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable all audio")
	fs.TextVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	cfg.StartScene = strings.TrimSpace(cfg.StartScene)
	if cfg.StartScene != "" {
		if _, ok := state.ParseSceneID(cfg.StartScene); !ok {
			return Config{}, fmt.Errorf("config: unknown start scene %q", cfg.StartScene)
		}
	}
	return cfg, nil
}

// Start returns the scene to begin on. Only debug builds may skip ahead.
func (c Config) Start() state.SceneID {
	if !c.Debug || c.StartScene == "" {
		return state.SceneOpening
	}
	id, ok := state.ParseSceneID(c.StartScene)
	if !ok {
		return state.SceneOpening
	}
	return id
}
