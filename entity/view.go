package entity

import "github.com/viant/tagripper/token"

// View is a detached, read-only copy of an entity
type View struct {
	ID        int                 `yaml:"id" json:"id"`
	ParentID  int                 `yaml:"parentId" json:"parentId"`
	Name      string              `yaml:"name,omitempty" json:"name,omitempty"`
	FQN       string              `yaml:"fqn,omitempty" json:"fqn,omitempty"`
	Type      token.Construct     `yaml:"type,omitempty" json:"type,omitempty"`
	Namespace bool                `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Status    Status              `yaml:"status" json:"status"`
	Line      int                 `yaml:"line,omitempty" json:"line,omitempty"`
	Tags      map[string][]string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// View snapshots the entity
func (e *Entity) View() View {
	fqn, _ := e.FQN()
	ret := View{
		ID:        e.id,
		ParentID:  e.parent,
		Name:      e.name,
		FQN:       fqn,
		Type:      e.construct,
		Namespace: e.IsModule(),
		Status:    e.Status(),
		Line:      e.line,
	}
	if len(e.tags) > 0 {
		ret.Tags = e.Tags()
	}
	return ret
}

// IsOpen reports whether the viewed scope was never closed
func (v *View) IsOpen() bool {
	return v.Status != Closed
}
