package index_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagripper/index"
)

const invoiceSource = `module Billing
  # @domain: Billing
  class Invoice
    def total
    end
  end
end
`

const straySource = `class Foo
  def a
  end
  # @domain: Orphan
end
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func sampleProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"Gemfile":                "source 'https://rubygems.org'\n",
		"lib/billing/invoice.rb": invoiceSource,
		"lib/billing/copy.rb":    invoiceSource,
		"lib/stray.rb":           straySource,
		"vendor/gem/lib/gem.rb":  "# @domain: Vendor\nmodule Gem\nend\n",
		"README.md":              "# @domain: Docs\n",
	})
}

func TestIndexer_Index(t *testing.T) {
	root := sampleProject(t)
	indexer := index.New(index.WithExclude("vendor/**"), index.WithConcurrency(1))

	report, err := indexer.Index(context.Background(), root)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, filepath.Base(root), report.Project)
	assert.Empty(t, report.Errors)
	assert.Equal(t, index.Stats{Files: 4, Cached: 1, Recovered: 3, Abandoned: 1}, report.Stats)

	var paths []string
	for _, group := range report.Documents.GroupByPath() {
		paths = append(paths, group.Path)
	}
	assert.Equal(t, []string{"lib/billing/copy.rb", "lib/billing/invoice.rb", "lib/stray.rb"}, paths)
	assert.Len(t, report.Documents, 8)

	billing := report.Documents.Filter(index.Query{Tags: map[string]string{"domain": "Billing"}})
	require.Len(t, billing, 2)
	for _, doc := range billing {
		assert.Equal(t, "Billing::Invoice", doc.FQN)
		assert.Equal(t, index.StatusClosed, doc.Status)
		assert.Equal(t, 3, doc.Line)
	}
	assert.Equal(t, billing[0].Hash, billing[1].Hash)

	foo := report.Documents.Filter(index.Query{Name: "Foo"})
	require.Len(t, foo, 1)
	assert.Equal(t, index.StatusClosed, foo[0].Status)
	assert.Empty(t, foo[0].Tags)
	assert.Empty(t, report.Documents.Filter(index.Query{Tags: map[string]string{"domain": "Vendor"}}))
}

func TestIndexer_Strict(t *testing.T) {
	root := sampleProject(t)
	indexer := index.New(index.WithExclude("vendor/**"), index.WithStrict(true))

	report, err := indexer.Index(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "lib/stray.rb", report.Errors[0].Path)
	assert.Contains(t, report.Errors[0].Error, "invalid transition")
	assert.Equal(t, 3, report.Stats.Files)
	assert.Len(t, report.Documents, 6)
}

func TestIndexer_TrailingTag(t *testing.T) {
	root := writeProject(t, map[string]string{
		"app.rb": "class Foo\n  def a\n  end\n  # @domain: Stray\n  LIMIT = 1\nend\n\nclass Baz\nend\n",
	})
	report, err := index.New().Index(context.Background(), root)
	require.NoError(t, err)

	baz := report.Documents.Filter(index.Query{Name: "Baz"})
	require.Len(t, baz, 1)
	assert.Equal(t, "Baz", baz[0].FQN)
	assert.Empty(t, baz[0].Tags)
	assert.Equal(t, index.StatusClosed, baz[0].Status)
	assert.Empty(t, report.Documents.Filter(index.Query{Tags: map[string]string{"domain": ""}}))
	assert.Equal(t, 0, report.Stats.Skipped)
	assert.Equal(t, 1, report.Stats.Abandoned)
}

func TestIndexer_DefaultInclude(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Rakefile":       "# @domain: Build\nmodule Tasks\nend\n",
		"tasks/db.rake":  "# @domain: Db\nmodule Db\nend\n",
		"ledger.gemspec": "Gem::Specification.new do |spec|\n  spec.name = \"ledger\"\nend\n",
		"lib/ledger.rb":  "module Ledger\nend\n",
		"docs/notes.txt": "# @domain: Docs\n",
	})
	report, err := index.New().Index(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Stats.Files)

	var fqns []string
	for _, doc := range report.Documents {
		fqns = append(fqns, doc.FQN)
	}
	assert.Equal(t, []string{"Tasks", "Ledger", "Db"}, fqns)
}

func TestIndexer_AllowedTags(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.rb": "# @domain: A\n# @owner: team\nmodule A\nend\n",
	})
	report, err := index.New(index.WithAllowedTags("owner")).Index(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, report.Documents, 1)
	assert.Equal(t, map[string][]string{"owner": {"team"}}, report.Documents[0].Tags)
}

func TestIndexer_SingleFile(t *testing.T) {
	root := sampleProject(t)
	report, err := index.New().Index(context.Background(), filepath.Join(root, "lib", "stray.rb"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lib"), report.Root)
	require.Len(t, report.Documents, 2)
	assert.Equal(t, "stray.rb", report.Documents[0].Path)
}

func TestIndexer_CacheEviction(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.rb": "module A\nend\n",
		"b.rb": "module B\nend\n",
	})
	indexer := index.New(index.WithCacheSize(1), index.WithConcurrency(1))
	_, err := indexer.Index(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(1), indexer.Evictions())
}

func TestIndexer_Matches(t *testing.T) {
	indexer := index.New(index.WithInclude("**/*.rb", "**/*.rake"), index.WithExclude("vendor/**", "spec/**"))
	tests := []struct {
		path   string
		expect bool
	}{
		{path: "app.rb", expect: true},
		{path: "lib/deep/nested/app.rb", expect: true},
		{path: "tasks/db.rake", expect: true},
		{path: "vendor/gem/app.rb", expect: false},
		{path: "spec/app_spec.rb", expect: false},
		{path: "README.md", expect: false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expect, indexer.Matches(tc.path))
		})
	}
}

func TestIndexer_MissingRoot(t *testing.T) {
	_, err := index.New().Index(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
