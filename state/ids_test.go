package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSceneID(t *testing.T) {
	tests := []struct {
		raw  string
		want SceneID
		ok   bool
	}{
		{"boot", SceneBoot, true},
		{"FalseNormalcy", SceneFalseNormalcy, true},
		{"false-normalcy", SceneFalseNormalcy, true},
		{" LOGIC_DUEL ", SceneLogicDuel, true},
		{"invalid", SceneInvalid, false},
		{"basement", SceneInvalid, false},
		{"", SceneInvalid, false},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseSceneID(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSceneIDRoundTrip(t *testing.T) {
	scenes := AllScenes()
	assert.Len(t, scenes, 16)
	for _, s := range scenes {
		assert.True(t, s.Valid())
		got, ok := ParseSceneID(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	assert.False(t, SceneInvalid.Valid())
	assert.False(t, SceneID(200).Valid())
	assert.Equal(t, "unknown", SceneID(200).String())
}

func TestEndings(t *testing.T) {
	assert.False(t, EndingNone.Valid())
	for _, e := range AllEndings() {
		assert.True(t, e.Valid())
		got, ok := ParseEnding(e.String())
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}
	assert.False(t, Ending(99).Valid())
	_, ok := ParseEnding("bad_c")
	assert.False(t, ok)
}
