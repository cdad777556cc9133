package state

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)}
	return NewSession(clock.Now), clock
}

func TestSessionDefaults(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, SceneOpening, s.Current())
	assert.Equal(t, EndingNone, s.Ending())
	assert.Equal(t, initialComplianceScore, s.Flags().ComplianceScore)
	assert.False(t, s.Started())
	assert.Zero(t, s.ElapsedSeconds())
}

func TestTransitionToLastWriteWins(t *testing.T) {
	s, _ := newTestSession()
	rng := rand.New(rand.NewSource(7))
	all := AllScenes()
	for i := 0; i < 200; i++ {
		next := all[rng.Intn(len(all)-1)] // skip the ending scene
		s.TransitionTo(next)
		require.Equal(t, next, s.Current(), "after transition %d", i)
	}
}

func TestComplianceScoreClamped(t *testing.T) {
	s, _ := newTestSession()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			s.RecordOverride()
		} else {
			s.RecordResistance()
		}
		score := s.Flags().ComplianceScore
		require.GreaterOrEqual(t, score, minComplianceScore)
		require.LessOrEqual(t, score, maxComplianceScore)
	}

	for i := 0; i < 20; i++ {
		s.RecordOverride()
	}
	assert.Equal(t, maxComplianceScore, s.Flags().ComplianceScore)
	for i := 0; i < 20; i++ {
		s.RecordResistance()
	}
	assert.Equal(t, minComplianceScore, s.Flags().ComplianceScore)
}

func TestCountersAreMonotonic(t *testing.T) {
	s, _ := newTestSession()
	s.IncrementFilesProcessed()
	s.IncrementFilesProcessed()
	s.RecordOverride()
	s.RecordResistance()
	s.RecordResistance()

	f := s.Flags()
	assert.Equal(t, 2, f.FilesProcessed)
	assert.Equal(t, 1, f.OverrideCount)
	assert.Equal(t, 2, f.ResistanceCount)
}

func TestElapsedSeconds(t *testing.T) {
	s, clock := newTestSession()
	clock.Advance(time.Minute)
	assert.Zero(t, s.ElapsedSeconds(), "not started")

	s.StartSession()
	prev := s.ElapsedSeconds()
	assert.Zero(t, prev)
	for i := 0; i < 50; i++ {
		clock.Advance(333 * time.Millisecond)
		got := s.ElapsedSeconds()
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 16, prev) // 16.65s

	s.StartSession()
	assert.Zero(t, s.ElapsedSeconds(), "restart resets the clock")

	clock.Advance(-time.Hour)
	assert.Zero(t, s.ElapsedSeconds(), "never negative")
}

func TestSetEndingFirstWins(t *testing.T) {
	s, _ := newTestSession()
	s.TransitionTo(SceneLogicDuel)

	assert.False(t, s.SetEnding(EndingNone))
	assert.Equal(t, SceneLogicDuel, s.Current())

	assert.True(t, s.SetEnding(EndingBadB))
	assert.Equal(t, SceneEnding, s.Current())
	assert.Equal(t, EndingBadB, s.Ending())

	assert.False(t, s.SetEnding(EndingFreedom))
	assert.Equal(t, EndingBadB, s.Ending())
}

func TestResetRestoresDefaults(t *testing.T) {
	s, _ := newTestSession()
	id := s.ID()
	s.StartSession()
	s.SetContractSigned()
	s.RecordOverride()
	s.SetEnding(EndingCompliance)

	s.Reset()
	assert.NotEqual(t, id, s.ID())
	assert.Equal(t, SceneOpening, s.Current())
	assert.Equal(t, defaultFlags(), s.Flags())
	assert.False(t, s.Started())
}

func TestSnapshot(t *testing.T) {
	s, clock := newTestSession()
	s.StartSession()
	clock.Advance(90 * time.Second)
	s.TransitionTo(SceneWorkspace)
	s.IncrementFilesProcessed()

	snap := s.Snapshot()
	assert.Equal(t, "workspace", snap.Scene)
	assert.Equal(t, "none", snap.Ending)
	assert.Equal(t, 90, snap.ElapsedSeconds)
	assert.Equal(t, 1, snap.Flags.FilesProcessed)
}
