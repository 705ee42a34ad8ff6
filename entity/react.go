package entity

import (
	"github.com/viant/tagripper/token"
)

// ignoredNames are identifiers that never name a construct
var ignoredNames = map[string]bool{
	"require":          true,
	"require_relative": true,
	"private":          true,
	"protected":        true,
	"public":           true,
	"module_function":  true,
	"include":          true,
	"extend":           true,
	"prepend":          true,
	"class_eval":       true,
	"instance_eval":    true,
	"define_method":    true,
	"attr_reader":      true,
	"attr_writer":      true,
	"attr_accessor":    true,
}

// IsIgnoredName reports whether text is a pseudo identifier that cannot name a construct
func IsIgnoredName(text string) bool {
	return ignoredNames[text]
}

// React dispatches tok to the reaction matching its kind and returns the next receiver.
// A nil receiver means a root scope has been closed.
func (e *Entity) React(tok *token.Token) (*Entity, error) {
	switch tok.Kind {
	case token.Comment:
		return e.ReactToComment(tok)
	case token.Keyword:
		return e.ReactToKeyword(tok)
	case token.Identifier, token.Constant:
		return e.ReactToNameCandidate(tok)
	}
	return e, nil
}

// ReactToComment tags this entity, or a new child when this entity is already named.
// Tags outside the tree allow-list are dropped.
func (e *Entity) ReactToComment(tok *token.Token) (*Entity, error) {
	if !tok.IsTagComment() {
		return e, nil
	}
	receiver := e
	if e.IsNamed() {
		receiver = e.spawn()
	}
	if !e.tree.allows(tok.Tag.Name) {
		return receiver, nil
	}
	if err := receiver.Tag(tok.Tag.Name, tok.Tag.Value); err != nil {
		return e, err
	}
	return receiver, nil
}

// ReactToKeyword opens a scope on a construct keyword and closes one on a terminating keyword
func (e *Entity) ReactToKeyword(tok *token.Token) (*Entity, error) {
	switch tok.Class {
	case token.NewScope:
		return e.openScope(tok.Construct)
	case token.EndScope:
		if err := e.Close(); err != nil {
			return e, err
		}
		return e.Parent(), nil
	}
	return e, nil
}

func (e *Entity) openScope(construct token.Construct) (*Entity, error) {
	receiver := e
	if e.IsNamed() {
		receiver = e.spawn()
	}
	if err := receiver.AwaitName(construct); err != nil {
		return e, err
	}
	return receiver, nil
}

// ReactToNameCandidate names an entity that awaits a name
func (e *Entity) ReactToNameCandidate(tok *token.Token) (*Entity, error) {
	if IsIgnoredName(tok.Text) || e.IsNamed() || !e.IsAwaitingName() {
		return e, nil
	}
	if err := e.SetName(tok.Text, tok.Line); err != nil {
		return e, err
	}
	return e, nil
}
