// Package state holds the two process-wide stores of a play session: the
// Session (current scene, narrative flags, clock) and the Player (environment
// snapshot, captured photo, pointer tracking).
//
// Neither store is safe for concurrent use. Both are mutated only from the
// game loop; asynchronous work posts its results back to the loop first.
package state

import (
	"time"

	"github.com/google/uuid"
)

const (
	initialComplianceScore = 50
	complianceStep         = 10
	minComplianceScore     = 0
	maxComplianceScore     = 100
)

// Flags are the coarse narrative progress markers shared across scenes.
type Flags struct {
	ContractSigned   bool   `yaml:"contract_signed"`
	TutorialComplete bool   `yaml:"tutorial_complete"`
	FilesProcessed   int    `yaml:"files_processed"`
	OverrideCount    int    `yaml:"override_count"`
	ResistanceCount  int    `yaml:"resistance_count"`
	WebcamGranted    bool   `yaml:"webcam_granted"`
	ComplianceScore  int    `yaml:"compliance_score"`
	Ending           Ending `yaml:"-"`
}

func defaultFlags() Flags {
	return Flags{ComplianceScore: initialComplianceScore}
}

// Session is the single-owner session store.
type Session struct {
	id        uuid.UUID
	current   SceneID
	startedAt time.Time
	flags     Flags
	now       func() time.Time
}

// NewSession creates a session positioned on the opening scene. A nil clock
// uses time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:      uuid.New(),
		current: SceneOpening,
		flags:   defaultFlags(),
		now:     now,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Current returns the scene key. It may be unknown if debug tooling forced a
// bad key; the orchestrator handles that case.
func (s *Session) Current() SceneID {
	return s.current
}

// TransitionTo sets the current scene unconditionally.
func (s *Session) TransitionTo(scene SceneID) {
	s.current = scene
}

// StartSession starts (or restarts) the play clock.
func (s *Session) StartSession() {
	s.startedAt = s.now()
}

func (s *Session) Started() bool {
	return !s.startedAt.IsZero()
}

// Elapsed returns play time since StartSession, or 0 if not started.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	d := s.now().Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedSeconds is Elapsed truncated to whole seconds.
func (s *Session) ElapsedSeconds() int {
	return int(s.Elapsed() / time.Second)
}

func (s *Session) Flags() Flags {
	return s.flags
}

func (s *Session) Ending() Ending {
	return s.flags.Ending
}

func (s *Session) IncrementFilesProcessed() {
	s.flags.FilesProcessed++
}

// RecordOverride counts a compliant override and raises the compliance score.
func (s *Session) RecordOverride() {
	s.flags.OverrideCount++
	s.adjustCompliance(complianceStep)
}

// RecordResistance counts an act of resistance and lowers the compliance score.
func (s *Session) RecordResistance() {
	s.flags.ResistanceCount++
	s.adjustCompliance(-complianceStep)
}

func (s *Session) adjustCompliance(delta int) {
	score := s.flags.ComplianceScore + delta
	if score < minComplianceScore {
		score = minComplianceScore
	}
	if score > maxComplianceScore {
		score = maxComplianceScore
	}
	s.flags.ComplianceScore = score
}

func (s *Session) SetContractSigned() {
	s.flags.ContractSigned = true
}

func (s *Session) CompleteTutorial() {
	s.flags.TutorialComplete = true
}

func (s *Session) SetWebcamGranted(granted bool) {
	s.flags.WebcamGranted = granted
}

// SetEnding records the ending and moves to the ending scene in one step.
// The first valid ending wins; later calls and EndingNone are ignored. It
// reports whether this call set the ending.
func (s *Session) SetEnding(ending Ending) bool {
	if !ending.Valid() || s.flags.Ending != EndingNone {
		return false
	}
	s.flags.Ending = ending
	s.current = SceneEnding
	return true
}

// Reset discards all progress and starts over with a new session id.
func (s *Session) Reset() {
	s.id = uuid.New()
	s.current = SceneOpening
	s.startedAt = time.Time{}
	s.flags = defaultFlags()
}

// SessionSnapshot is a read-only dump of the session for debug tooling.
type SessionSnapshot struct {
	ID             string `yaml:"id"`
	Scene          string `yaml:"scene"`
	Ending         string `yaml:"ending"`
	ElapsedSeconds int    `yaml:"elapsed_seconds"`
	Flags          Flags  `yaml:"flags"`
}

func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:             s.id.String(),
		Scene:          s.current.String(),
		Ending:         s.flags.Ending.String(),
		ElapsedSeconds: s.ElapsedSeconds(),
		Flags:          s.flags,
	}
}
