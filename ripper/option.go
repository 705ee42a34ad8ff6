package ripper

import "log/slog"

type Option func(*Scanner)

// Policy controls what a scan does when it meets a structural problem
type Policy int

const (
	// Recover keeps scanning: an unbalanced close starts a fresh root, an illegal transition skips the token
	Recover Policy = iota
	// Abort stops the scan and returns the error with the partial result
	Abort
)

func (p Policy) String() string {
	if p == Abort {
		return "abort"
	}
	return "recover"
}

// WithAllowedTags restricts accepted tag names; empty accepts all tags
func WithAllowedTags(names ...string) Option {
	return func(s *Scanner) {
		s.allowed = append([]string(nil), names...)
	}
}

// WithUnbalancedPolicy sets the reaction to a scope closed at root level
func WithUnbalancedPolicy(policy Policy) Option {
	return func(s *Scanner) {
		s.unbalanced = policy
	}
}

// WithErrorPolicy sets the reaction to an illegal state transition
func WithErrorPolicy(policy Policy) Option {
	return func(s *Scanner) {
		s.onError = policy
	}
}

// WithStrict aborts on both unbalanced scopes and illegal transitions
func WithStrict(strict bool) Option {
	return func(s *Scanner) {
		if strict {
			s.unbalanced = Abort
			s.onError = Abort
		}
	}
}

// WithLogger sets the scan logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}
