// Package ripper drives a single pass over a token stream and collects the
// taggable entities it builds.
package ripper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/tagripper/entity"
	"github.com/viant/tagripper/token"
)

// ErrUnbalancedScope is returned under the Abort policy when a scope terminating keyword has no open scope
var ErrUnbalancedScope = errors.New("unbalanced scope")

// Scanner scans token streams; it holds configuration only and can be shared across goroutines
type Scanner struct {
	allowed    []string
	unbalanced Policy
	onError    Policy
	logger     *slog.Logger
}

// New creates a scanner
func New(options ...Option) *Scanner {
	ret := &Scanner{
		unbalanced: Recover,
		onError:    Abort,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Scan builds the entity tree of tokens. On error the partial result is returned along with it.
func (s *Scanner) Scan(ctx context.Context, tokens []token.Token) (*Result, error) {
	tree := entity.NewTree(s.allowed...)
	result := &Result{tree: tree}
	current := tree.NewRoot()
	for i := range tokens {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		tok := &tokens[i]
		next, err := current.React(tok)
		if err != nil && s.onError == Recover && tok.Kind == token.Keyword && tok.Class == token.EndScope && !current.IsNamed() {
			next, err = s.unwind(current, tok, result)
		}
		if err != nil {
			err = fmt.Errorf("line %d: %s %q: %w", tok.Line, tok.Kind, tok.Text, err)
			if s.onError == Abort {
				return result, err
			}
			result.Skipped++
			s.logger.Warn("skipped token", slog.Int("line", tok.Line), slog.String("error", err.Error()))
			continue
		}
		if next == nil {
			if s.unbalanced == Abort {
				return result, fmt.Errorf("%w: %q at line %d closes the root scope", ErrUnbalancedScope, tok.Text, tok.Line)
			}
			result.Recovered++
			s.logger.Debug("root scope closed, starting a new one", slog.Int("line", tok.Line))
			next = tree.NewRoot()
		}
		current = next
	}
	return result, nil
}

// unwind leaves unnamed scopes open and applies the terminating keyword to the nearest named ancestor
func (s *Scanner) unwind(current *entity.Entity, tok *token.Token, result *Result) (*entity.Entity, error) {
	for !current.IsNamed() {
		result.Abandoned++
		s.logger.Debug("leaving unnamed scope open", slog.Int("line", tok.Line), slog.Int("id", current.ID()))
		if current = current.Parent(); current == nil {
			return nil, nil
		}
	}
	return current.React(tok)
}
