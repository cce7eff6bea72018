// Package toggle couples two toggle controls into one two-state switch.
//
// A Pair owns a "run" control and a "kill" control. Exactly one of them is
// active at any time: run is active while the state is Running, kill while
// it is Idle. The pair is toolkit independent; the GTK layer adapts its
// toggle buttons to Control and forwards their toggled signals to Toggled.
package toggle

import (
	"github.com/yllada/save-state/state"
)

// Control is a two-state widget.
type Control interface {
	Active() bool
	SetActive(active bool)
}

// ChangeFunc is called after the pair moved to a new state.
type ChangeFunc func(st state.RunState)

// Pair keeps two controls logically inverse to each other.
// It is not safe for concurrent use; call it from the UI thread.
type Pair struct {
	run  Control
	kill Control

	current  state.RunState
	syncing  bool
	onChange ChangeFunc
}

// NewPair couples run and kill. The pair starts Idle; call Init to apply
// the persisted state.
func NewPair(run, kill Control) *Pair {
	return &Pair{run: run, kill: kill}
}

// OnChange registers the callback fired by state transitions.
func (p *Pair) OnChange(fn ChangeFunc) {
	p.onChange = fn
}

// State returns the current state.
func (p *Pair) State() state.RunState {
	return p.current
}

// Init applies st to both controls without firing the change callback.
func (p *Pair) Init(st state.RunState) {
	p.current = st
	p.apply()
}

// Set moves the pair to st. The change callback fires only when the state
// actually changes.
func (p *Pair) Set(st state.RunState) {
	if st == p.current {
		p.apply()
		return
	}

	p.current = st
	p.apply()

	if p.onChange != nil {
		p.onChange(st)
	}
}

// Toggle flips the state.
func (p *Pair) Toggle() {
	p.Set(!p.current)
}

// Toggled handles a toggled notification from one of the two controls.
//
// Activating a control selects its state. Deactivating the control that is
// currently selected is swallowed: the control is switched back on, so the
// pair never ends up with both controls off.
func (p *Pair) Toggled(c Control) {
	if p.syncing {
		return
	}

	var target state.RunState
	switch c {
	case p.run:
		target = state.Running
	case p.kill:
		target = state.Idle
	default:
		return
	}

	if !c.Active() {
		p.apply()
		return
	}

	p.Set(target)
}

// apply pushes the current state into the controls. Notifications the
// controls emit while being updated are ignored by Toggled.
func (p *Pair) apply() {
	p.syncing = true
	defer func() { p.syncing = false }()

	running := bool(p.current)
	if p.run.Active() != running {
		p.run.SetActive(running)
	}
	if p.kill.Active() != !running {
		p.kill.SetActive(!running)
	}
}
