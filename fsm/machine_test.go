package fsm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagripper/fsm"
)

type door string

const (
	opened door = "opened"
	closed door = "closed"
	locked door = "locked"
)

func newDoor() *fsm.Definition[door, string] {
	return fsm.NewDefinition[door, string](closed, opened, locked).
		Event("open", fsm.Rule[door]{From: closed, To: opened}).
		Event("close", fsm.Rule[door]{From: opened, To: closed}).
		Event("lock", fsm.Rule[door]{From: closed, To: locked})
}

func TestDefinition_Initial(t *testing.T) {
	def := newDoor()
	assert.Equal(t, closed, def.Initial())
	assert.Equal(t, []door{closed, opened, locked}, def.States())
	assert.Equal(t, []string{"open", "close", "lock"}, def.Events())
	assert.True(t, def.New().Is(closed))
}

func TestMachine_Trigger(t *testing.T) {
	tests := []struct {
		description string
		events      []string
		expect      door
		wantErr     bool
	}{
		{description: "declared edge", events: []string{"open"}, expect: opened},
		{description: "round trip", events: []string{"open", "close", "lock"}, expect: locked},
		{description: "repeat is a no-op", events: []string{"open", "open"}, expect: opened},
		{description: "no edge from state", events: []string{"open", "lock"}, expect: opened, wantErr: true},
		{description: "unknown event", events: []string{"kick"}, expect: closed, wantErr: true},
		{description: "terminal state", events: []string{"lock", "open"}, expect: locked, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			machine := newDoor().New()
			var err error
			for _, event := range tc.events {
				if _, err = machine.Trigger(event); err != nil {
					break
				}
			}
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, fsm.ErrIllegalTransition))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expect, machine.State())
		})
	}
}

func TestMachine_May(t *testing.T) {
	machine := newDoor().New()
	assert.True(t, machine.May("open"))
	assert.False(t, machine.May("close"))

	_, err := machine.Trigger("open")
	require.NoError(t, err)
	// a state reached by the event itself is accepted
	assert.True(t, machine.May("open"))
	assert.True(t, machine.May("close"))
	assert.False(t, machine.May("lock"))
}

func TestIllegalStateTransitionError(t *testing.T) {
	machine := newDoor().New()
	_, err := machine.Trigger("close")
	var transitionErr *fsm.IllegalStateTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "close", transitionErr.Event)
	assert.Equal(t, "closed", transitionErr.From)
	assert.EqualError(t, err, "invalid transition: cannot transition via close from closed")
}

func TestDefinition_UndeclaredState(t *testing.T) {
	assert.Panics(t, func() {
		fsm.NewDefinition[door, string](closed).Event("open", fsm.Rule[door]{From: closed, To: opened})
	})
}
