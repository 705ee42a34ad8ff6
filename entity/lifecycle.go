package entity

import (
	"errors"

	"github.com/viant/tagripper/fsm"
)

// Status is the lifecycle state of a taggable entity
type Status string

const (
	Pending      Status = "pending"
	Tagged       Status = "tagged"
	AwaitingName Status = "awaiting_name"
	Named        Status = "named"
	Closed       Status = "closed"
)

// Event drives a lifecycle transition
type Event string

const (
	EventTag       Event = "tag"
	EventAwaitName Event = "await_name"
	EventName      Event = "name"
	EventClose     Event = "close"
)

// ErrFrozen is matched by errors returned when a closed entity is mutated
var ErrFrozen = errors.New("entity is closed")

// Lifecycle is the state graph shared by all taggable entities
var Lifecycle = fsm.NewDefinition[Status, Event](Pending, Tagged, AwaitingName, Named, Closed).
	Event(EventTag, fsm.Rule[Status]{From: Pending, To: Tagged}).
	Event(EventAwaitName,
		fsm.Rule[Status]{From: Pending, To: AwaitingName},
		fsm.Rule[Status]{From: Tagged, To: AwaitingName}).
	Event(EventName, fsm.Rule[Status]{From: AwaitingName, To: Named}).
	Event(EventClose, fsm.Rule[Status]{From: Named, To: Closed})
