package state

import "strings"

// SceneID identifies one full-screen narrative unit. The set is closed; the
// zero value and anything past the last scene are treated as unknown.
type SceneID uint8

const (
	SceneInvalid SceneID = iota
	SceneOpening
	ScenePrologue
	SceneBoot
	SceneDesktop
	SceneVideo
	SceneContract
	SceneWorkspace
	SceneGlitch
	SceneFalseNormalcy
	SceneResignation
	SceneLockdown
	SceneInvestigation
	SceneMirror
	SceneTerminal
	SceneLogicDuel
	SceneEnding

	sceneCount
)

var sceneNames = [sceneCount]string{
	SceneInvalid:       "invalid",
	SceneOpening:       "opening",
	ScenePrologue:      "prologue",
	SceneBoot:          "boot",
	SceneDesktop:       "desktop",
	SceneVideo:         "video",
	SceneContract:      "contract",
	SceneWorkspace:     "workspace",
	SceneGlitch:        "glitch",
	SceneFalseNormalcy: "false_normalcy",
	SceneResignation:   "resignation",
	SceneLockdown:      "lockdown",
	SceneInvestigation: "investigation",
	SceneMirror:        "mirror",
	SceneTerminal:      "terminal",
	SceneLogicDuel:     "logic_duel",
	SceneEnding:        "ending",
}

func (s SceneID) Valid() bool {
	return s > SceneInvalid && s < sceneCount
}

func (s SceneID) String() string {
	if s >= sceneCount {
		return "unknown"
	}
	return sceneNames[s]
}

// AllScenes returns every valid scene in narrative order.
func AllScenes() []SceneID {
	out := make([]SceneID, 0, sceneCount-1)
	for s := SceneOpening; s < sceneCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseSceneID resolves a scene name. Matching ignores case, dashes and
// underscores so "FalseNormalcy", "false-normalcy" and "false_normalcy" all
// resolve to the same scene.
func ParseSceneID(raw string) (SceneID, bool) {
	key := normalizeKey(raw)
	for s := SceneOpening; s < sceneCount; s++ {
		if normalizeKey(sceneNames[s]) == key {
			return s, true
		}
	}
	return SceneInvalid, false
}

// Ending is a terminal narrative outcome.
type Ending uint8

const (
	EndingNone Ending = iota
	EndingCompliance
	EndingFreedom
	EndingDefiance
	EndingBadA
	EndingBadB

	endingCount
)

var endingNames = [endingCount]string{
	EndingNone:       "none",
	EndingCompliance: "compliance",
	EndingFreedom:    "freedom",
	EndingDefiance:   "defiance",
	EndingBadA:       "bad_a",
	EndingBadB:       "bad_b",
}

// Valid reports whether e is a reachable ending. EndingNone is not.
func (e Ending) Valid() bool {
	return e > EndingNone && e < endingCount
}

func (e Ending) String() string {
	if e >= endingCount {
		return "unknown"
	}
	return endingNames[e]
}

// AllEndings returns every reachable ending.
func AllEndings() []Ending {
	out := make([]Ending, 0, endingCount-1)
	for e := EndingCompliance; e < endingCount; e++ {
		out = append(out, e)
	}
	return out
}

func ParseEnding(raw string) (Ending, bool) {
	key := normalizeKey(raw)
	for e := EndingNone; e < endingCount; e++ {
		if normalizeKey(endingNames[e]) == key {
			return e, true
		}
	}
	return EndingNone, false
}

func normalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}
