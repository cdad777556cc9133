package scene

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevealStages(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var stages []int
	done := 0
	r := NewReveal(scope, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 50 * time.Millisecond},
		func(stage int) { stages = append(stages, stage) },
		func() { done++ })

	assert.Equal(t, 3, r.Stages())
	scope.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, r.Stage())

	scope.Advance(199 * time.Millisecond)
	assert.Equal(t, 1, r.Stage())

	scope.Advance(time.Second)
	assert.Equal(t, []int{1, 2, 3}, stages)
	assert.True(t, r.Done())
	assert.Equal(t, 1, done)
}

func TestRevealSkip(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var stages []int
	done := 0
	r := NewReveal(scope, []time.Duration{time.Second, time.Second},
		func(stage int) { stages = append(stages, stage) },
		func() { done++ })

	scope.Advance(time.Second)
	r.Skip()
	r.Skip()
	scope.Advance(10 * time.Second)

	assert.Equal(t, []int{1, 2}, stages)
	assert.Equal(t, 1, done)
	assert.Zero(t, scope.Pending())
}

func TestRevealEmpty(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	done := false
	r := NewReveal(scope, nil, nil, func() { done = true })
	assert.False(t, r.Done())
	scope.Advance(0)
	assert.True(t, done)
}

func TestRevealDiesWithScope(t *testing.T) {
	scope := NewScope(context.Background())
	done := false
	NewReveal(scope, []time.Duration{time.Second}, nil, func() { done = true })

	scope.Close()
	scope.Advance(time.Minute)
	assert.False(t, done)
}
