package index

import (
	"log/slog"

	"github.com/viant/afs"
)

const (
	defaultConcurrency = 4
	defaultCacheSize   = 1024
)

// DefaultInclude returns the patterns of every file kind the Ruby tokenizer reads
func DefaultInclude() []string {
	return []string{"**/*.rb", "**/*.rake", "**/*.gemspec", "**/*.ru", "**/Gemfile", "**/Rakefile"}
}

type Option func(*Indexer)

// WithFS sets the file system service used to walk and read files
func WithFS(fs afs.Service) Option {
	return func(i *Indexer) {
		i.fs = fs
	}
}

// WithInclude sets doublestar patterns a file path must match to be indexed
func WithInclude(patterns ...string) Option {
	return func(i *Indexer) {
		i.include = patterns
	}
}

// WithExclude sets doublestar patterns excluding file paths
func WithExclude(patterns ...string) Option {
	return func(i *Indexer) {
		i.exclude = patterns
	}
}

// WithAllowedTags restricts accepted tag names
func WithAllowedTags(names ...string) Option {
	return func(i *Indexer) {
		i.allowed = names
	}
}

// WithStrict fails a file on its first illegal transition instead of skipping the token
func WithStrict(strict bool) Option {
	return func(i *Indexer) {
		i.strict = strict
	}
}

// WithConcurrency sets the number of files scanned in parallel
func WithConcurrency(n int) Option {
	return func(i *Indexer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithCacheSize sets the number of scan results kept by content hash
func WithCacheSize(size int) Option {
	return func(i *Indexer) {
		if size > 0 {
			i.cacheSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Indexer) {
		if logger != nil {
			i.logger = logger
		}
	}
}
