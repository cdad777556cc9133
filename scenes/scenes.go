// Package scenes holds the game's sixteen scene components and the static
// transition table that wires them together.
package scenes

import (
	"log/slog"

	"github.com/milk9111/save/audio"
	"github.com/milk9111/save/capture"
	"github.com/milk9111/save/common"
	"github.com/milk9111/save/content"
	"github.com/milk9111/save/envinfo"
	"github.com/milk9111/save/minigame"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/speech"
	"github.com/milk9111/save/state"
)

// Deps are the collaborators scenes share. Zero fields get working
// defaults: embedded content, silence, subtitle-only narration and a camera
// that is always refused.
type Deps struct {
	Content     *content.Library
	Cues        audio.Cues
	Narrator    *speech.Narrator
	Camera      *capture.Manager
	Environment func() envinfo.Info
	// Seed fixes the memory game's sequences.
	Seed uint32
	// Duel tunes the logic duel. Zero fields use the default tuning.
	Duel   minigame.DuelConfig
	Logger *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Content == nil {
		d.Content = content.NewLibrary(content.Source{}, d.Logger)
	}
	if d.Cues == nil {
		d.Cues = audio.Silent{}
	}
	if d.Narrator == nil {
		d.Narrator = speech.NewNarrator(speech.NewSubtitle(), d.Logger)
	}
	if d.Camera == nil {
		d.Camera = capture.NewManager(capture.Denied{}, d.Logger)
	}
	if d.Environment == nil {
		d.Environment = func() envinfo.Info {
			return envinfo.Collect(common.BaseWidth, common.BaseHeight)
		}
	}
	if d.Seed == 0 {
		d.Seed = 0x5a7e
	}
	return d
}

// NewRegistry builds the transition table. Scenes leave only through the
// exits declared here.
func NewRegistry(deps Deps) *scene.Registry {
	d := deps.withDefaults()
	r := scene.NewRegistry()

	r.MustRegister(scene.Entry{
		ID:    state.SceneOpening,
		Exits: []scene.Edge{scene.To("begin", state.ScenePrologue)},
		Build: func(env scene.Env) (scene.Scene, error) { return newOpening(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.ScenePrologue,
		Exits: []scene.Edge{scene.To("done", state.SceneBoot)},
		Build: func(env scene.Env) (scene.Scene, error) { return newNarrative(env, d, lookPlain), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneBoot,
		Exits: []scene.Edge{scene.To("done", state.SceneDesktop)},
		Build: func(env scene.Env) (scene.Scene, error) { return newBoot(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneDesktop,
		Exits: []scene.Edge{scene.To("done", state.SceneVideo)},
		Build: func(env scene.Env) (scene.Scene, error) { return newDesktop(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneVideo,
		Exits: []scene.Edge{scene.To("done", state.SceneContract)},
		Build: func(env scene.Env) (scene.Scene, error) { return newNarrative(env, d, lookVideo), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneContract,
		Exits: []scene.Edge{scene.To("accept", state.SceneWorkspace)},
		Build: func(env scene.Env) (scene.Scene, error) { return newContract(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneWorkspace,
		Exits: []scene.Edge{scene.To("done", state.SceneGlitch)},
		Build: func(env scene.Env) (scene.Scene, error) { return newWorkspace(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneGlitch,
		Exits: []scene.Edge{scene.To("done", state.SceneFalseNormalcy)},
		Build: func(env scene.Env) (scene.Scene, error) { return newNarrative(env, d, lookGlitch), nil },
	})
	r.MustRegister(scene.Entry{
		ID: state.SceneFalseNormalcy,
		Exits: []scene.Edge{
			scene.To("comply", state.SceneLockdown),
			scene.To("resign", state.SceneResignation),
		},
		Build: func(env scene.Env) (scene.Scene, error) { return newFalseNormalcy(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneResignation,
		Exits: []scene.Edge{scene.To("done", state.SceneLockdown)},
		Build: func(env scene.Env) (scene.Scene, error) { return newResignation(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:   state.SceneLockdown,
		Mode: scene.Mode{Recovery: true},
		Exits: []scene.Edge{
			scene.End("submit", state.EndingCompliance),
			scene.To("interrupt", state.SceneInvestigation),
		},
		Build: func(env scene.Env) (scene.Scene, error) { return newBoot(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID: state.SceneInvestigation,
		Exits: []scene.Edge{
			scene.To("won", state.SceneMirror),
			scene.End("lost", state.EndingBadA),
		},
		Build: func(env scene.Env) (scene.Scene, error) { return newInvestigation(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneMirror,
		Exits: []scene.Edge{scene.To("done", state.SceneTerminal)},
		Build: func(env scene.Env) (scene.Scene, error) { return newMirror(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID: state.SceneTerminal,
		Exits: []scene.Edge{
			scene.End("comply", state.EndingCompliance),
			scene.End("purge", state.EndingDefiance),
			scene.To("escape", state.SceneLogicDuel),
		},
		Build: func(env scene.Env) (scene.Scene, error) {
			t, err := newTerminal(env, d)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	})
	r.MustRegister(scene.Entry{
		ID: state.SceneLogicDuel,
		Exits: []scene.Edge{
			scene.End("won", state.EndingFreedom),
			scene.End("lost", state.EndingBadB),
		},
		Build: func(env scene.Env) (scene.Scene, error) { return newLogicDuel(env, d), nil },
	})
	r.MustRegister(scene.Entry{
		ID:    state.SceneEnding,
		Build: func(env scene.Env) (scene.Scene, error) { return newEnding(env, d), nil },
	})
	return r
}
