package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitsShareOneLatch(t *testing.T) {
	calls := map[string]int{}
	e := newExits("test", map[string]func(){
		"comply": func() { calls["comply"]++ },
		"resign": func() { calls["resign"]++ },
	}, nil)

	assert.False(t, e.Take("nope"))
	assert.False(t, e.Fired())

	assert.True(t, e.Take("comply"))
	assert.False(t, e.Take("comply"))
	assert.False(t, e.Take("resign"))

	assert.Equal(t, map[string]int{"comply": 1}, calls)
	assert.Equal(t, "comply", e.Taken())
	assert.Equal(t, []string{"comply", "resign"}, e.Names())
	assert.True(t, e.Has("resign"))
}

func TestNilExits(t *testing.T) {
	var e *Exits
	assert.False(t, e.Take("done"))
	assert.False(t, e.Fired())
	assert.Empty(t, e.Names())
}
