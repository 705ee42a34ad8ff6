// Package index turns scan results of a project into queryable tagged documents.
package index

import (
	"sort"
	"strings"

	"github.com/viant/tagripper/entity"
	"github.com/viant/tagripper/token"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Document represents a named construct with its tags
type Document struct {
	ID      string              `yaml:"id" json:"id"`                               // Unique identifier for the document
	Project string              `yaml:"project,omitempty" json:"project,omitempty"` // Project name
	Path    string              `yaml:"path" json:"path"`                           // File path relative to the scanned root
	Name    string              `yaml:"name" json:"name"`                           // Construct name
	FQN     string              `yaml:"fqn" json:"fqn"`                             // Fully qualified name
	Type    token.Construct     `yaml:"type,omitempty" json:"type,omitempty"`       // module, class, method, instance_method
	Module  bool                `yaml:"module,omitempty" json:"module,omitempty"`   // module or class namespace
	Status  string              `yaml:"status" json:"status"`                       // open or closed
	Tags    map[string][]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Line    int                 `yaml:"line,omitempty" json:"line,omitempty"`
	Hash    uint64              `yaml:"hash" json:"hash"` // Hash of the file content
}

type Documents []*Document

// NewDocuments creates documents for the named entities of one file
func NewDocuments(project, path string, hash uint64, views []entity.View) Documents {
	var ret Documents
	for i := range views {
		view := &views[i]
		if view.FQN == "" {
			continue
		}
		doc := &Document{
			Project: project,
			Path:    path,
			Name:    view.Name,
			FQN:     view.FQN,
			Type:    view.Type,
			Module:  view.Namespace,
			Status:  StatusClosed,
			Tags:    view.Tags,
			Line:    view.Line,
			Hash:    hash,
		}
		if view.IsOpen() {
			doc.Status = StatusOpen
		}
		doc.GetID()
		ret = append(ret, doc)
	}
	return ret
}

func (d *Document) GetID() string {
	if d.ID != "" {
		return d.ID
	}
	builder := strings.Builder{}
	builder.WriteString(string(d.Type))
	builder.WriteString(":")
	builder.WriteString(d.Path)
	builder.WriteString(":")
	builder.WriteString(d.FQN)
	d.ID = builder.String()
	return d.ID
}

// HasTag reports whether the document carries tag name, with value unless value is empty
func (d *Document) HasTag(name, value string) bool {
	values, ok := d.Tags[name]
	if !ok {
		return false
	}
	if value == "" {
		return true
	}
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

// Filter returns documents matching query
func (d Documents) Filter(query Query) Documents {
	var result Documents
	for _, doc := range d {
		if doc == nil || !query.Matches(doc) {
			continue
		}
		result = append(result, doc)
	}
	return result
}

// Tagged returns documents with at least one tag
func (d Documents) Tagged() Documents {
	var result Documents
	for _, doc := range d {
		if doc != nil && len(doc.Tags) > 0 {
			result = append(result, doc)
		}
	}
	return result
}

// Group holds the documents of one file
type Group struct {
	Path      string    `yaml:"path" json:"path"`
	Documents Documents `yaml:"documents" json:"documents"`
}

// GroupByPath groups documents by file path, keeping first seen path order
func (d Documents) GroupByPath() []*Group {
	groups := make(map[string]*Group)
	var result []*Group
	for _, doc := range d {
		if doc == nil {
			continue
		}
		group, ok := groups[doc.Path]
		if !ok {
			group = &Group{Path: doc.Path}
			groups[doc.Path] = group
			result = append(result, group)
		}
		group.Documents = append(group.Documents, doc)
	}
	return result
}

// Sort orders documents by path then line
func (d Documents) Sort() {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Path != d[j].Path {
			return d[i].Path < d[j].Path
		}
		return d[i].Line < d[j].Line
	})
}
