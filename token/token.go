// Package token defines the classified lexical tokens consumed by the ripper.
package token

// Kind classifies a token
type Kind int

const (
	Comment Kind = iota
	Keyword
	Identifier
	Constant
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "comment"
	case Keyword:
		return "keyword"
	case Identifier:
		return "identifier"
	case Constant:
		return "constant"
	}
	return "unknown"
}

// KeywordClass groups keywords by the effect they have on lexical scopes
type KeywordClass int

const (
	// Other keywords do not open or close a taggable scope
	Other KeywordClass = iota
	// NewScope keywords introduce a module, class or method definition
	NewScope
	// EndScope keywords terminate the innermost taggable scope
	EndScope
)

// Construct is the kind of program construct a NewScope keyword introduces
type Construct string

const (
	None           Construct = ""
	Module         Construct = "module"
	Class          Construct = "class"
	Method         Construct = "method"
	InstanceMethod Construct = "instance_method"
)

// Tag is a key/value pair extracted from a tag comment
type Tag struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Token represents a single classified lexical token
type Token struct {
	Kind      Kind
	Text      string
	Line      int
	Tag       *Tag         // set for comments in tag format
	Class     KeywordClass // keywords only
	Construct Construct    // NewScope keywords only
}

// IsTagComment reports whether token is a comment carrying a tag
func (t *Token) IsTagComment() bool {
	return t.Kind == Comment && t.Tag != nil
}

// IsNameCandidate reports whether token can name a construct
func (t *Token) IsNameCandidate() bool {
	return t.Kind == Identifier || t.Kind == Constant
}

// NewComment creates a comment token, recognizing the tag format
func NewComment(text string, line int) Token {
	ret := Token{Kind: Comment, Text: text, Line: line}
	if tag, ok := ParseTag(text); ok {
		ret.Tag = tag
	}
	return ret
}

// NewKeyword creates a keyword token that neither opens nor closes a scope
func NewKeyword(text string, line int) Token {
	return Token{Kind: Keyword, Text: text, Line: line, Class: Other}
}

// NewScopeKeyword creates a keyword token opening a construct
func NewScopeKeyword(text string, construct Construct, line int) Token {
	return Token{Kind: Keyword, Text: text, Line: line, Class: NewScope, Construct: construct}
}

// NewEndKeyword creates a scope terminating keyword token
func NewEndKeyword(text string, line int) Token {
	return Token{Kind: Keyword, Text: text, Line: line, Class: EndScope}
}

// NewIdentifier creates an identifier token
func NewIdentifier(text string, line int) Token {
	return Token{Kind: Identifier, Text: text, Line: line}
}

// NewConstant creates a constant token
func NewConstant(text string, line int) Token {
	return Token{Kind: Constant, Text: text, Line: line}
}
