// Package ruby turns Ruby source into the token stream consumed by the ripper.
package ruby

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/viant/tagripper/token"
)

var keywords = map[string]bool{
	"alias": true, "and": true, "begin": true, "break": true, "case": true,
	"class": true, "def": true, "defined?": true, "do": true, "else": true,
	"elsif": true, "end": true, "ensure": true, "for": true, "if": true,
	"in": true, "module": true, "next": true, "not": true, "or": true,
	"redo": true, "rescue": true, "retry": true, "return": true, "then": true,
	"undef": true, "unless": true, "until": true, "when": true, "while": true,
	"yield": true, "BEGIN": true, "END": true,
}

// constructs maps tree-sitter scope nodes to their opening keyword and construct type
var constructs = map[string]struct {
	keyword   string
	construct token.Construct
}{
	"module":           {keyword: "module", construct: token.Module},
	"class":            {keyword: "class", construct: token.Class},
	"method":           {keyword: "def", construct: token.InstanceMethod},
	"singleton_method": {keyword: "def", construct: token.Method},
}

// Tokenizer extracts comments, keywords, identifiers and constants from Ruby code
type Tokenizer struct{}

// New creates a Ruby tokenizer
func New() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize parses src and returns its tokens in source order
func (t *Tokenizer) Tokenize(ctx context.Context, src []byte) ([]token.Token, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	w := &walker{src: src}
	w.visit(tree.RootNode())
	return w.tokens, nil
}

type walker struct {
	src       []byte
	tokens    []token.Token
	singleton int // depth of enclosing class << self blocks
}

func (w *walker) visit(node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Type() == "comment" {
		w.comment(node)
		return
	}
	if node.IsNamed() {
		if spec, ok := constructs[node.Type()]; ok {
			w.construct(node, spec.keyword, spec.construct)
			return
		}
		if node.Type() == "singleton_class" {
			w.singleton++
			defer func() { w.singleton-- }()
		}
	}
	count := int(node.ChildCount())
	if count == 0 {
		w.leaf(node)
		return
	}
	for i := 0; i < count; i++ {
		w.visit(node.Child(i))
	}
}

// construct emits the opening keyword, the name as a single token, the body, and a closing keyword.
// The closing keyword is emitted at the node end, so endless methods close as well.
func (w *walker) construct(node *sitter.Node, keyword string, construct token.Construct) {
	if construct == token.InstanceMethod && w.singleton > 0 {
		construct = token.Method
	}
	if construct == token.Module || construct == token.Class {
		saved := w.singleton
		w.singleton = 0
		defer func() { w.singleton = saved }()
	}
	name := node.ChildByFieldName("name")
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case !child.IsNamed() && child.Type() == keyword:
			w.tokens = append(w.tokens, token.NewScopeKeyword(keyword, construct, line(child)))
		case !child.IsNamed() && child.Type() == "end":
		case name != nil && sameNode(child, name):
			w.name(child)
		default:
			w.visit(child)
		}
	}
	w.tokens = append(w.tokens, token.NewEndKeyword("end", int(node.EndPoint().Row)+1))
}

func (w *walker) name(node *sitter.Node) {
	text := strings.TrimPrefix(node.Content(w.src), "::")
	switch node.Type() {
	case "constant", "scope_resolution":
		w.tokens = append(w.tokens, token.NewConstant(text, line(node)))
	default:
		w.tokens = append(w.tokens, token.NewIdentifier(text, line(node)))
	}
}

func (w *walker) comment(node *sitter.Node) {
	start := line(node)
	for i, text := range strings.Split(node.Content(w.src), "\n") {
		w.tokens = append(w.tokens, token.NewComment(text, start+i))
	}
}

func (w *walker) leaf(node *sitter.Node) {
	switch node.Type() {
	case "identifier":
		w.tokens = append(w.tokens, token.NewIdentifier(node.Content(w.src), line(node)))
	case "constant":
		w.tokens = append(w.tokens, token.NewConstant(node.Content(w.src), line(node)))
	default:
		if !node.IsNamed() && keywords[node.Type()] {
			w.tokens = append(w.tokens, token.NewKeyword(node.Type(), line(node)))
		}
	}
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
