// Package fsm provides a small declarative finite state machine.
//
// A Definition declares the states and the events of a graph once; any number
// of Machines can then be created from it, each tracking its own current state
// and refusing transitions that the graph does not declare.
package fsm

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is matched by every error returned from Machine.Trigger.
var ErrIllegalTransition = errors.New("illegal state transition")

// IllegalStateTransitionError reports an event that cannot fire from the current state
type IllegalStateTransitionError struct {
	Event string
	From  string
}

func (e *IllegalStateTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot transition via %s from %s", e.Event, e.From)
}

func (e *IllegalStateTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Rule is a single from -> to edge of an event
type Rule[S comparable] struct {
	From S
	To   S
}

// Definition is an immutable-after-setup state graph
type Definition[S comparable, E comparable] struct {
	states []S
	known  map[S]bool
	events map[E][]Rule[S]
	order  []E
}

// NewDefinition declares the states of a graph. The first state is the initial one.
func NewDefinition[S comparable, E comparable](states ...S) *Definition[S, E] {
	if len(states) == 0 {
		panic("fsm: definition requires at least one state")
	}
	ret := &Definition[S, E]{
		known:  make(map[S]bool, len(states)),
		events: make(map[E][]Rule[S]),
	}
	for _, state := range states {
		if ret.known[state] {
			continue
		}
		ret.known[state] = true
		ret.states = append(ret.states, state)
	}
	return ret
}

// Event declares an event with its transition rules; calling it again for the same name appends rules.
func (d *Definition[S, E]) Event(name E, rules ...Rule[S]) *Definition[S, E] {
	if _, ok := d.events[name]; !ok {
		d.order = append(d.order, name)
	}
	for _, rule := range rules {
		if !d.known[rule.From] || !d.known[rule.To] {
			panic(fmt.Sprintf("fsm: event %v references undeclared state in %v -> %v", name, rule.From, rule.To))
		}
		d.events[name] = append(d.events[name], rule)
	}
	if _, ok := d.events[name]; !ok {
		d.events[name] = nil
	}
	return d
}

// Initial returns the state every new machine starts in
func (d *Definition[S, E]) Initial() S {
	return d.states[0]
}

// States returns declared states in declaration order
func (d *Definition[S, E]) States() []S {
	return append([]S(nil), d.states...)
}

// Events returns declared event names in declaration order
func (d *Definition[S, E]) Events() []E {
	return append([]E(nil), d.order...)
}

// Rules returns the transition rules of an event
func (d *Definition[S, E]) Rules(event E) []Rule[S] {
	return append([]Rule[S](nil), d.events[event]...)
}

// New creates a machine in the initial state
func (d *Definition[S, E]) New() *Machine[S, E] {
	return &Machine[S, E]{def: d, state: d.Initial()}
}

// Machine is a per-instance runtime of a Definition
type Machine[S comparable, E comparable] struct {
	def   *Definition[S, E]
	state S
}

// State returns the current state
func (m *Machine[S, E]) State() S {
	return m.state
}

// Is reports whether the machine is in the given state
func (m *Machine[S, E]) Is(state S) bool {
	return m.state == state
}

// May reports whether event can fire. A state that is the target of one of the
// event rules is accepted as well, so repeated triggers are tolerated.
func (m *Machine[S, E]) May(event E) bool {
	for _, rule := range m.def.events[event] {
		if rule.From == m.state || rule.To == m.state {
			return true
		}
	}
	return false
}

// Trigger fires event and returns the resulting state
func (m *Machine[S, E]) Trigger(event E) (S, error) {
	if !m.May(event) {
		return m.state, &IllegalStateTransitionError{Event: fmt.Sprint(event), From: fmt.Sprint(m.state)}
	}
	for _, rule := range m.def.events[event] {
		if rule.From == m.state {
			m.state = rule.To
			return m.state, nil
		}
	}
	return m.state, nil
}
