package entity

// Tree owns every entity created while scanning one token stream.
// Entities are appended in creation order and never removed.
type Tree struct {
	entities []*Entity
	allowed  map[string]bool
}

// NewTree creates an empty tree; allowed restricts accepted tag names, none means all
func NewTree(allowed ...string) *Tree {
	ret := &Tree{}
	if len(allowed) > 0 {
		ret.allowed = make(map[string]bool, len(allowed))
		for _, name := range allowed {
			ret.allowed[name] = true
		}
	}
	return ret
}

// NewRoot creates a pending entity without a parent
func (t *Tree) NewRoot() *Entity {
	return t.add(noParent)
}

// Get returns entity by id or nil
func (t *Tree) Get(id int) *Entity {
	if id < 0 || id >= len(t.entities) {
		return nil
	}
	return t.entities[id]
}

// All returns every entity in creation order
func (t *Tree) All() []*Entity {
	return append([]*Entity(nil), t.entities...)
}

// Len returns number of entities
func (t *Tree) Len() int {
	return len(t.entities)
}

// Children returns direct children of the entity with the given id
func (t *Tree) Children(id int) []*Entity {
	var ret []*Entity
	for _, candidate := range t.entities {
		if candidate.parent == id {
			ret = append(ret, candidate)
		}
	}
	return ret
}

func (t *Tree) allows(tagName string) bool {
	return len(t.allowed) == 0 || t.allowed[tagName]
}

func (t *Tree) add(parent int) *Entity {
	ret := &Entity{
		id:     len(t.entities),
		parent: parent,
		tree:   t,
		tags:   map[string]map[string]struct{}{},
		state:  Lifecycle.New(),
	}
	t.entities = append(t.entities, ret)
	return ret
}
