// Package entity tracks the lexical scopes of a source file as taggable entities.
//
// An Entity starts pending, may collect tags, waits for a name once a
// module, class or method keyword opens its scope, and becomes immutable when
// the scope closes. A named entity that meets a new construct or tag spawns a
// child, which is how nesting of any depth is followed.
package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/tagripper/fsm"
	"github.com/viant/tagripper/token"
)

const (
	// NamespaceSeparator joins nested namespace members
	NamespaceSeparator = "::"
	// MethodSeparator joins an instance method to its owner
	MethodSeparator = "#"

	noParent = -1
)

// Entity is a taggable lexical scope (module, class or method)
type Entity struct {
	id        int
	parent    int
	tree      *Tree
	name      string
	line      int
	construct token.Construct
	tags      map[string]map[string]struct{}
	state     *fsm.Machine[Status, Event]
}

// ID returns the entity identity, unique within its tree
func (e *Entity) ID() int {
	return e.id
}

// Name returns the entity name, empty until named
func (e *Entity) Name() string {
	return e.name
}

// Line returns the source line of the naming token
func (e *Entity) Line() int {
	return e.line
}

// Type returns the construct type
func (e *Entity) Type() token.Construct {
	return e.construct
}

// Status returns the lifecycle status
func (e *Entity) Status() Status {
	return e.state.State()
}

// Parent returns the enclosing entity or nil for a root
func (e *Entity) Parent() *Entity {
	if e.parent == noParent {
		return nil
	}
	return e.tree.Get(e.parent)
}

func (e *Entity) IsPending() bool      { return e.state.Is(Pending) }
func (e *Entity) IsTagged() bool       { return e.state.Is(Tagged) }
func (e *Entity) IsAwaitingName() bool { return e.state.Is(AwaitingName) }
func (e *Entity) IsNamed() bool        { return e.state.Is(Named) }
func (e *Entity) IsClosed() bool       { return e.state.Is(Closed) }

// IsModule reports whether the entity is a namespace (module or class)
func (e *Entity) IsModule() bool {
	return e.construct == token.Module || e.construct == token.Class
}

// Tags returns a copy of the tags, values sorted
func (e *Entity) Tags() map[string][]string {
	ret := make(map[string][]string, len(e.tags))
	for name, values := range e.tags {
		list := make([]string, 0, len(values))
		for value := range values {
			list = append(list, value)
		}
		sort.Strings(list)
		ret[name] = list
	}
	return ret
}

// HasTag reports whether the entity carries name, and value when value is not empty
func (e *Entity) HasTag(name, value string) bool {
	values, ok := e.tags[name]
	if !ok {
		return false
	}
	if value == "" {
		return true
	}
	_, ok = values[value]
	return ok
}

// FQN returns the fully qualified name, e.g. Foo::Bar#baz; ok is false until the entity is named
func (e *Entity) FQN() (string, bool) {
	if !e.IsNamed() && !e.IsClosed() {
		return "", false
	}
	parent := e.Parent()
	if parent == nil {
		return e.name, true
	}
	separator := NamespaceSeparator
	if e.construct == token.InstanceMethod {
		separator = MethodSeparator
	}
	return strings.Join(parent.segments(), NamespaceSeparator) + separator + e.name, true
}

func (e *Entity) segments() []string {
	parent := e.Parent()
	if parent == nil {
		return []string{e.name}
	}
	return append(parent.segments(), e.name)
}

// Tag adds a tag value, moving a pending entity to tagged
func (e *Entity) Tag(name, value string) error {
	if err := e.trigger(EventTag); err != nil {
		return err
	}
	values, ok := e.tags[name]
	if !ok {
		values = map[string]struct{}{}
		e.tags[name] = values
	}
	values[value] = struct{}{}
	return nil
}

// AwaitName marks that a construct keyword opened this scope
func (e *Entity) AwaitName(construct token.Construct) error {
	if err := e.trigger(EventAwaitName); err != nil {
		return err
	}
	e.construct = construct
	return nil
}

// SetName assigns the name; allowed exactly once, while awaiting a name
func (e *Entity) SetName(name string, line int) error {
	if e.IsClosed() {
		return e.frozen(EventName)
	}
	if !e.IsAwaitingName() {
		return &fsm.IllegalStateTransitionError{Event: string(EventName), From: string(e.Status())}
	}
	if err := e.trigger(EventName); err != nil {
		return err
	}
	e.name = name
	e.line = line
	return nil
}

// Close terminates the scope; the entity is immutable afterwards
func (e *Entity) Close() error {
	return e.trigger(EventClose)
}

func (e *Entity) trigger(event Event) error {
	if e.IsClosed() {
		return e.frozen(event)
	}
	_, err := e.state.Trigger(event)
	return err
}

func (e *Entity) frozen(event Event) error {
	cause := &fsm.IllegalStateTransitionError{Event: string(event), From: string(Closed)}
	return fmt.Errorf("%w: %w", ErrFrozen, cause)
}

func (e *Entity) spawn() *Entity {
	return e.tree.add(e.id)
}

func (e *Entity) String() string {
	return fmt.Sprintf("<id=%d,name=%s,status=%s,tags=%v,parent=%d>", e.id, e.name, e.Status(), e.Tags(), e.parent)
}
