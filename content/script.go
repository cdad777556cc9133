package content

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/milk9111/save/state"
)

// Beat is one timed line of a scene script. Delay is the wait before the
// line appears, counted from the previous beat.
type Beat struct {
	Delay time.Duration `yaml:"delay"`
	Text  string        `yaml:"text"`
	Speak bool          `yaml:"speak"`
	Cue   string        `yaml:"cue"`
	Style string        `yaml:"style"`
	// When is an expression over Facts; the beat is dropped when it is
	// false.
	When string `yaml:"when"`

	when *vm.Program
}

// Item is one file for the emotion sorter.
type Item struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
}

// EndingText is what the ending screen shows for one ending.
type EndingText struct {
	Title   string   `yaml:"title"`
	Lines   []string `yaml:"lines"`
	Cue     string   `yaml:"cue"`
	Ambient string   `yaml:"ambient"`
}

// Script is a decoded scene script. Scenes use whichever sections they
// need.
type Script struct {
	Name       string                `yaml:"-"`
	Title      string                `yaml:"title"`
	Ambient    string                `yaml:"ambient"`
	Beats      []Beat                `yaml:"beats"`
	Text       map[string]string     `yaml:"text"`
	Categories []string              `yaml:"categories"`
	Items      []Item                `yaml:"items"`
	Endings    map[string]EndingText `yaml:"endings"`
}

// Facts is the read-only view of the session that beat conditions and
// the terminal program see.
type Facts map[string]any

// FactsFor builds Facts from the stores.
func FactsFor(session *state.Session, player *state.Player) Facts {
	snap := session.Snapshot()
	f := Facts{
		"files_processed":   snap.Flags.FilesProcessed,
		"override_count":    snap.Flags.OverrideCount,
		"resistance_count":  snap.Flags.ResistanceCount,
		"compliance_score":  snap.Flags.ComplianceScore,
		"contract_signed":   snap.Flags.ContractSigned,
		"tutorial_complete": snap.Flags.TutorialComplete,
		"webcam_granted":    snap.Flags.WebcamGranted,
		"elapsed_seconds":   snap.ElapsedSeconds,
		"ending":            snap.Ending,
		"scene":             snap.Scene,
		"has_photo":         false,
		"user":              "Unknown",
		"host":              "Unknown",
	}
	if player != nil {
		f["has_photo"] = player.HasPhoto()
		if info, ok := player.Environment(); ok {
			f["user"] = info.User
			f["host"] = info.Host
		}
	}
	return f
}

func (s *Script) compile() error {
	for i := range s.Beats {
		b := &s.Beats[i]
		if b.When == "" {
			continue
		}
		prog, err := expr.Compile(b.When, expr.Env(map[string]any{}), expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("beat %d: when %q: %w", i, b.When, err)
		}
		b.when = prog
	}
	return nil
}

// BeatsFor returns the beats whose condition holds for f. A condition
// that fails to evaluate hides its beat.
func (s *Script) BeatsFor(f Facts) []Beat {
	out := make([]Beat, 0, len(s.Beats))
	for _, b := range s.Beats {
		if b.when != nil {
			ok, err := expr.Run(b.when, map[string]any(f))
			if err != nil {
				continue
			}
			if v, _ := ok.(bool); !v {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// Delays lists each beat's delay, ready for a reveal timeline.
func Delays(beats []Beat) []time.Duration {
	out := make([]time.Duration, len(beats))
	for i, b := range beats {
		out[i] = b.Delay
	}
	return out
}

// Line returns a named text entry, or fallback when the script lacks it.
func (s *Script) Line(key, fallback string) string {
	if s != nil {
		if v, ok := s.Text[key]; ok && v != "" {
			return v
		}
	}
	return fallback
}
