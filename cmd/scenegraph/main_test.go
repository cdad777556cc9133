package main

import (
	"bytes"
	"testing"

	"github.com/milk9111/save/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDot(&buf, scenes.NewRegistry(scenes.Deps{}).Entries()))

	out := buf.String()
	assert.Contains(t, out, "digraph scenes {")
	assert.Contains(t, out, `"opening" -> "prologue" [label="begin"];`)
	assert.Contains(t, out, `"logic_duel" -> "ending:bad_b" [label="lost", style=dashed];`)
	assert.Contains(t, out, `"lockdown" [label="lockdown\\n(recovery)"];`)
	assert.Contains(t, out, `"ending:freedom" [shape=doubleoctagon];`)
}
