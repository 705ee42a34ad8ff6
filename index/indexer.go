package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/tagripper/entity"
	"github.com/viant/tagripper/inspector"
	"github.com/viant/tagripper/inspector/repository"
	"github.com/viant/tagripper/ripper"
	"golang.org/x/sync/errgroup"
)

// scanEntry is a cached per content scan outcome
type scanEntry struct {
	views     []entity.View
	skipped   int
	recovered int
	abandoned int
}

// Indexer walks a project, scans every matching file and collects tagged documents
type Indexer struct {
	fs          afs.Service
	factory     *inspector.Factory
	detector    *repository.Detector
	include     []string
	exclude     []string
	allowed     []string
	strict      bool
	concurrency int
	cacheSize   int
	cache       *lru.Cache[uint64, *scanEntry]
	evictions   atomic.Int64
	scanner     *ripper.Scanner
	logger      *slog.Logger
}

// New creates an indexer
func New(options ...Option) *Indexer {
	ret := &Indexer{
		fs:          afs.New(),
		factory:     inspector.NewFactory(),
		detector:    repository.New(),
		include:     DefaultInclude(),
		concurrency: defaultConcurrency,
		cacheSize:   defaultCacheSize,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.cache, _ = lru.NewWithEvict[uint64, *scanEntry](ret.cacheSize, ret.handleEviction)
	onError := ripper.Recover
	if ret.strict {
		onError = ripper.Abort
	}
	// every top level construct of a file closes a root scope
	ret.scanner = ripper.New(
		ripper.WithAllowedTags(ret.allowed...),
		ripper.WithUnbalancedPolicy(ripper.Recover),
		ripper.WithErrorPolicy(onError),
		ripper.WithLogger(ret.logger),
	)
	return ret
}

func (i *Indexer) handleEviction(key uint64, _ *scanEntry) {
	i.evictions.Add(1)
	i.logger.Debug("scan cache eviction", slog.Uint64("hash", key))
}

// Evictions returns the number of scan results dropped from the cache
func (i *Indexer) Evictions() int64 {
	return i.evictions.Load()
}

// Matches reports whether a path relative to the indexed root is selected by include and exclude patterns
func (i *Indexer) Matches(relPath string) bool {
	for _, pattern := range i.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}
	for _, pattern := range i.include {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// Index scans location, a directory or a single file, and reports its tagged documents
func (i *Indexer) Index(ctx context.Context, location string) (*Report, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	object, err := i.fs.Object(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}

	report := &Report{RunID: uuid.New().String(), Root: absPath, Project: filepath.Base(absPath)}
	if project, err := i.detector.DetectProject(absPath); err == nil {
		report.Project = project.Name
	}

	var files []string
	if object.IsDir() {
		if files, err = i.list(ctx, absPath); err != nil {
			return nil, err
		}
	} else {
		report.Root = filepath.Dir(absPath)
		files = []string{filepath.Base(absPath)}
	}
	i.logger.Info("indexing", slog.String("root", report.Root), slog.Int("files", len(files)), slog.String("run", report.RunID))

	documents := make([]Documents, len(files))
	failures := make([]error, len(files))
	var mux sync.Mutex
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(i.concurrency)
	for idx, rel := range files {
		idx, rel := idx, rel
		group.Go(func() error {
			docs, stats, err := i.IndexFile(gctx, report.Project, filepath.Join(report.Root, rel), rel)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				i.logger.Warn("failed to index file", slog.String("path", rel), slog.String("error", err.Error()))
				failures[idx] = err
				return nil
			}
			documents[idx] = docs
			mux.Lock()
			report.Stats.Cached += stats.Cached
			report.Stats.Skipped += stats.Skipped
			report.Stats.Recovered += stats.Recovered
			report.Stats.Abandoned += stats.Abandoned
			mux.Unlock()
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	for idx, rel := range files {
		if failures[idx] != nil {
			report.Errors = append(report.Errors, FileError{Path: rel, Error: failures[idx].Error()})
			continue
		}
		report.Stats.Files++
		report.Documents = append(report.Documents, documents[idx]...)
	}
	return report, nil
}

// IndexFile scans one file and returns its documents; relPath is recorded on documents
func (i *Indexer) IndexFile(ctx context.Context, project, URL, relPath string) (Documents, Stats, error) {
	stats := Stats{Files: 1}
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	hash, err := Hash(src)
	if err != nil {
		return nil, stats, err
	}
	result, ok := i.cache.Get(hash)
	if ok {
		stats.Cached++
		i.logger.Debug("scan cache hit", slog.String("path", relPath))
	} else {
		if result, err = i.scan(ctx, relPath, src); err != nil {
			return nil, stats, err
		}
		i.cache.Add(hash, result)
	}
	stats.Skipped = result.skipped
	stats.Recovered = result.recovered
	stats.Abandoned = result.abandoned
	return NewDocuments(project, relPath, hash, result.views), stats, nil
}

func (i *Indexer) scan(ctx context.Context, relPath string, src []byte) (*scanEntry, error) {
	tokens, err := i.factory.Tokenize(ctx, relPath, src)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", relPath, err)
	}
	result, err := i.scanner.Scan(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", relPath, err)
	}
	return &scanEntry{views: result.Views(), skipped: result.Skipped, recovered: result.Recovered, abandoned: result.Abandoned}, nil
}

// list returns supported file paths under root relative to it
func (i *Indexer) list(ctx context.Context, root string) ([]string, error) {
	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		rel := path.Join(parent, info.Name())
		if i.Matches(rel) && i.factory.Supports(rel) {
			files = append(files, rel)
		}
		return true, nil
	}
	if err := i.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
