package index

import (
	"fmt"
	"strings"
)

// Query selects documents by name and tags; zero value matches everything
type Query struct {
	Name string            // matches the simple or fully qualified name
	Tags map[string]string // tag name to value, empty value matches any value
}

// Matches reports whether doc satisfies all query criteria
func (q Query) Matches(doc *Document) bool {
	if q.Name != "" && q.Name != doc.Name && q.Name != doc.FQN {
		return false
	}
	for name, value := range q.Tags {
		if !doc.HasTag(name, value) {
			return false
		}
	}
	return true
}

// ParseTagQuery parses name=value expressions; a bare name matches any value
func ParseTagQuery(exprs ...string) (map[string]string, error) {
	ret := make(map[string]string, len(exprs))
	for _, expr := range exprs {
		name, value, _ := strings.Cut(expr, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if name == "" {
			return nil, fmt.Errorf("invalid tag query %q: missing tag name", expr)
		}
		ret[name] = strings.TrimSpace(value)
	}
	return ret, nil
}
