package scene

import "time"

// Reveal is a linear timed reveal: stage starts at 0 and advances by one as
// each delay elapses. Reaching the last stage runs onDone.
//
// Each step is scheduled only when the previous one fires, so the whole
// chain dies with the scope.
type Reveal struct {
	scope   *Scope
	delays  []time.Duration
	stage   int
	pending TimerID
	onStage func(stage int)
	onDone  func()
	done    bool
}

// NewReveal starts a reveal on scope. delays[i] is the wait before stage
// i+1. With no delays the reveal completes on the first Advance.
func NewReveal(scope *Scope, delays []time.Duration, onStage func(stage int), onDone func()) *Reveal {
	r := &Reveal{
		scope:   scope,
		delays:  append([]time.Duration(nil), delays...),
		onStage: onStage,
		onDone:  onDone,
	}
	if len(r.delays) == 0 {
		r.pending = scope.After(0, r.finish)
		return r
	}
	r.schedule()
	return r
}

func (r *Reveal) schedule() {
	r.pending = r.scope.After(r.delays[r.stage], r.step)
}

func (r *Reveal) step() {
	r.pending = 0
	r.stage++
	if r.onStage != nil {
		r.onStage(r.stage)
	}
	if r.stage >= len(r.delays) {
		r.finish()
		return
	}
	r.schedule()
}

func (r *Reveal) finish() {
	if r.done {
		return
	}
	r.done = true
	if r.onDone != nil {
		r.onDone()
	}
}

// Stage returns the current stage, from 0 to Stages().
func (r *Reveal) Stage() int {
	return r.stage
}

func (r *Reveal) Stages() int {
	return len(r.delays)
}

func (r *Reveal) Done() bool {
	return r.done
}

// Skip jumps straight to the final stage, announcing each skipped stage in
// order so content unlocked along the way is not missed.
func (r *Reveal) Skip() {
	if r.done {
		return
	}
	if r.pending != 0 {
		r.scope.Cancel(r.pending)
		r.pending = 0
	}
	for r.stage < len(r.delays) {
		r.stage++
		if r.onStage != nil {
			r.onStage(r.stage)
		}
	}
	r.finish()
}
