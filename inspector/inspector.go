package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/tagripper/inspector/ruby"
	"github.com/viant/tagripper/token"
)

// Tokenizer turns source code into a classified token stream
type Tokenizer interface {
	// Tokenize parses source code and returns its tokens in source order
	Tokenize(ctx context.Context, src []byte) ([]token.Token, error)
}

// Factory creates tokenizers based on file names
type Factory struct {
	extensions map[string]string
	basenames  map[string]string
}

// NewFactory creates a new tokenizer factory
func NewFactory() *Factory {
	return &Factory{
		extensions: map[string]string{
			".rb":      "ruby",
			".rake":    "ruby",
			".gemspec": "ruby",
			".ru":      "ruby",
		},
		basenames: map[string]string{
			"Gemfile":  "ruby",
			"Rakefile": "ruby",
		},
	}
}

// Language returns the language of filename or empty when unsupported
func (f *Factory) Language(filename string) string {
	base := filepath.Base(filename)
	if lang, ok := f.basenames[base]; ok {
		return lang
	}
	return f.extensions[strings.ToLower(filepath.Ext(base))]
}

// Supports reports whether filename can be tokenized
func (f *Factory) Supports(filename string) bool {
	return f.Language(filename) != ""
}

// GetTokenizer returns an appropriate tokenizer based on file name
func (f *Factory) GetTokenizer(filename string) (Tokenizer, error) {
	switch f.Language(filename) {
	case "ruby":
		return ruby.New(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(filename))
	}
}

// Tokenize is a convenience method that gets the appropriate tokenizer and tokenizes src
func (f *Factory) Tokenize(ctx context.Context, filename string, src []byte) ([]token.Token, error) {
	tokenizer, err := f.GetTokenizer(filename)
	if err != nil {
		return nil, err
	}
	return tokenizer.Tokenize(ctx, src)
}
