package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/save/audio"
	"github.com/milk9111/save/capture"
	"github.com/milk9111/save/common"
	"github.com/milk9111/save/config"
	"github.com/milk9111/save/content"
	"github.com/milk9111/save/envinfo"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/scenes"
	"github.com/milk9111/save/speech"
	"github.com/milk9111/save/state"
	"github.com/milk9111/save/ui"
)

type Game struct {
	frames int

	cfg    config.Config
	logger *slog.Logger
	ctx    context.Context

	session *state.Session
	player  *state.Player
	poller  *input.Poller

	mixer    *audio.Mixer
	narrator *speech.Narrator
	camera   *capture.Manager
	library  *content.Library
	watcher  *content.Watcher

	orchestrator *scene.Orchestrator
	debug        *debugOverlay
}

func NewGame(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		session: state.NewSession(nil),
		player:  state.NewPlayer(),
		poller:  input.NewPoller(),
	}

	g.library = content.NewLibrary(content.Source{Dir: cfg.ContentDir}, logger)
	if cfg.Debug && cfg.ContentDir != "" {
		w, err := content.NewWatcher(cfg.ContentDir)
		if err != nil {
			logger.Warn("save: content hot reload disabled", "dir", cfg.ContentDir, "error", err)
		} else {
			g.watcher = w
			go g.library.Follow(w)
		}
	}

	var cues audio.Cues = audio.Silent{}
	var clips speech.Player
	if !cfg.Mute {
		actx := ebaudio.NewContext(audio.SampleRate)
		g.mixer = audio.NewMixer(actx, logger)
		cues = g.mixer
		clips = audio.NewClipPlayer(actx)
	}

	g.narrator = speech.NewNarrator(newSpeaker(cfg, clips, logger), logger)
	g.camera = capture.NewManager(newCamera(cfg), logger)

	id := g.session.ID()
	reg := scenes.NewRegistry(scenes.Deps{
		Content:  g.library,
		Cues:     cues,
		Narrator: g.narrator,
		Camera:   g.camera,
		Environment: func() envinfo.Info {
			w, h := ebiten.Monitor().Size()
			return envinfo.Collect(w, h)
		},
		Seed:   binary.BigEndian.Uint32(id[:4]),
		Logger: logger,
	})
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("save: transition table: %w", err)
	}

	g.session.TransitionTo(cfg.Start())
	g.orchestrator = scene.NewOrchestrator(ctx, g.session, g.player, reg, logger)
	if cfg.Debug {
		g.debug = newDebugOverlay(g.orchestrator, g.session, g.player, logger)
	}
	logger.Info("save: ready", "session", id, "start", cfg.Start(), "debug", cfg.Debug, "mute", cfg.Mute)
	return g, nil
}

// newSpeaker chains the configured voices. Subtitles always come last so a
// line is never lost.
func newSpeaker(cfg config.Config, clips speech.Player, logger *slog.Logger) speech.Speaker {
	var speakers []speech.Speaker
	if cfg.TTSURL != "" && clips != nil {
		speakers = append(speakers, speech.NewHTTP(cfg.TTSURL, cfg.TTSTimeout, clips))
	}
	if !cfg.Mute && cfg.LocalTTS != "" {
		if cmd := speech.NewCommand(cfg.LocalTTS); cmd.Available() {
			speakers = append(speakers, cmd)
		} else {
			logger.Info("save: local speech unavailable", "command", cfg.LocalTTS)
		}
	}
	speakers = append(speakers, speech.NewSubtitle())
	return speech.NewFallback(logger, speakers...)
}

func newCamera(cfg config.Config) capture.Camera {
	switch cfg.CameraDevice {
	case config.CameraNone:
		return capture.Denied{}
	case config.CameraTest:
		return capture.Static{}
	default:
		return capture.NewFFmpeg(cfg.FFmpegPath, cfg.CameraDevice)
	}
}

func (g *Game) Update() error {
	g.frames++
	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		return ebiten.Termination
	}

	frame := g.poller.Poll()
	g.player.UpdatePointer(frame.MouseX, frame.MouseY, time.Now())

	if g.mixer != nil {
		defer g.mixer.Update()
	}
	if g.debug != nil && g.debug.Update(frame) {
		return nil
	}
	return g.orchestrator.Update(frame, time.Second/common.TPS)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.orchestrator.Draw(screen)

	if line := g.narrator.Line(); line != "" {
		ui.Box(screen, 0, common.BaseHeight-84, common.BaseWidth, 56, ui.Background, nil)
		ui.DrawCentered(screen, line, ui.Face(ui.Sans, 22), common.BaseHeight-72, ui.Corporate)
	}

	if g.debug != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Scene: %s", g.frames, ebiten.ActualFPS(), g.session.Current()))
		g.debug.Draw(screen)
	}
}

// Close tears down the mounted scene and stops background work.
func (g *Game) Close() {
	g.orchestrator.Close()
	g.narrator.Stop()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
