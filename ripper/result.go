package ripper

import (
	"github.com/viant/tagripper/entity"
)

// Result is the outcome of one scan: every entity constructed, open or closed
type Result struct {
	tree      *entity.Tree
	Skipped   int // tokens skipped after an illegal transition
	Recovered int // roots started after a root level close
	Abandoned int // unnamed scopes left open by a terminating keyword
}

// Tree returns the underlying entity tree
func (r *Result) Tree() *entity.Tree {
	return r.tree
}

// Entities returns all entities in construction order
func (r *Result) Entities() []*entity.Entity {
	return r.tree.All()
}

// Named returns entities that received a name
func (r *Result) Named() []*entity.Entity {
	return r.filter(func(e *entity.Entity) bool {
		_, ok := e.FQN()
		return ok
	})
}

// Open returns entities whose scope was never closed
func (r *Result) Open() []*entity.Entity {
	return r.filter(func(e *entity.Entity) bool {
		return !e.IsClosed()
	})
}

// Find returns the first entity with name
func (r *Result) Find(name string) *entity.Entity {
	for _, candidate := range r.tree.All() {
		if candidate.Name() == name {
			return candidate
		}
	}
	return nil
}

// FindByFQN returns the first entity with fully qualified name
func (r *Result) FindByFQN(fqn string) *entity.Entity {
	for _, candidate := range r.tree.All() {
		if actual, ok := candidate.FQN(); ok && actual == fqn {
			return candidate
		}
	}
	return nil
}

// FindByTag returns entities tagged with name, and value unless empty
func (r *Result) FindByTag(name, value string) []*entity.Entity {
	return r.filter(func(e *entity.Entity) bool {
		return e.HasTag(name, value)
	})
}

// Views returns detached copies of all entities
func (r *Result) Views() []entity.View {
	all := r.tree.All()
	ret := make([]entity.View, 0, len(all))
	for _, e := range all {
		ret = append(ret, e.View())
	}
	return ret
}

func (r *Result) filter(fn func(e *entity.Entity) bool) []*entity.Entity {
	var ret []*entity.Entity
	for _, candidate := range r.tree.All() {
		if fn(candidate) {
			ret = append(ret, candidate)
		}
	}
	return ret
}
