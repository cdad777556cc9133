package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypewriter(t *testing.T) {
	assert.Equal(t, "", Typewriter("hello", 0))
	assert.Equal(t, "hel", Typewriter("hello", 3))
	assert.Equal(t, "hello", Typewriter("hello", 99))
	assert.Equal(t, "né", Typewriter("néant", 2))
}

func TestPanelIsLazy(t *testing.T) {
	clicked := false
	p := NewChoicePanel("Sign?", []Choice{{Label: "Accept", OnClick: func() { clicked = true }}})
	p.Update()
	assert.False(t, p.Built())
	assert.False(t, clicked)

	var nilPanel *Panel
	nilPanel.Update()
	assert.False(t, nilPanel.Built())
}
