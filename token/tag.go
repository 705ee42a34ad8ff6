package token

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`^@([A-Za-z_][\w.-]*):\s*(.*)$`)

// ParseTag extracts a tag from a single comment line of the form "# @name: value".
// Leading comment markers (#, //, *) and surrounding whitespace are ignored.
func ParseTag(comment string) (*Tag, bool) {
	body := strings.TrimSpace(comment)
	body = strings.TrimLeft(body, "#/*")
	body = strings.TrimSpace(body)
	matches := tagRe.FindStringSubmatch(body)
	if len(matches) != 3 {
		return nil, false
	}
	value := strings.TrimSpace(matches[2])
	if value == "" {
		return nil, false
	}
	return &Tag{Name: matches[1], Value: value}, true
}
