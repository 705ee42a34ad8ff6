package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagripper/entity"
	"github.com/viant/tagripper/index"
	"github.com/viant/tagripper/token"
	"gopkg.in/yaml.v3"
)

func sampleViews() []entity.View {
	return []entity.View{
		{ID: 0, ParentID: -1, Name: "Billing", FQN: "Billing", Type: token.Module, Namespace: true, Status: entity.Closed, Line: 1},
		{ID: 1, ParentID: 0, Name: "Invoice", FQN: "Billing::Invoice", Type: token.Class, Namespace: true, Status: entity.Closed, Line: 3,
			Tags: map[string][]string{"domain": {"Billing"}, "owner": {"payments"}}},
		{ID: 2, ParentID: 1, Name: "total", FQN: "Billing::Invoice#total", Type: token.InstanceMethod, Status: entity.Named, Line: 4,
			Tags: map[string][]string{"domain": {"Totals"}}},
		{ID: 3, ParentID: -1, Status: entity.Pending},
	}
}

func TestNewDocuments(t *testing.T) {
	docs := index.NewDocuments("ledger", "lib/invoice.rb", 42, sampleViews())
	require.Len(t, docs, 3)

	var expect index.Documents
	err := yaml.Unmarshal([]byte(`
- id: "module:lib/invoice.rb:Billing"
  project: ledger
  path: lib/invoice.rb
  name: Billing
  fqn: Billing
  type: module
  module: true
  status: closed
  line: 1
  hash: 42
- id: "class:lib/invoice.rb:Billing::Invoice"
  project: ledger
  path: lib/invoice.rb
  name: Invoice
  fqn: Billing::Invoice
  type: class
  module: true
  status: closed
  tags:
    domain: [Billing]
    owner: [payments]
  line: 3
  hash: 42
- id: "instance_method:lib/invoice.rb:Billing::Invoice#total"
  project: ledger
  path: lib/invoice.rb
  name: total
  fqn: Billing::Invoice#total
  type: instance_method
  status: open
  tags:
    domain: [Totals]
  line: 4
  hash: 42
`), &expect)
	require.NoError(t, err)
	assert.Equal(t, expect, docs)
}

func TestDocuments_Tagged(t *testing.T) {
	docs := index.NewDocuments("ledger", "lib/invoice.rb", 1, sampleViews())
	tagged := docs.Tagged()
	require.Len(t, tagged, 2)
	assert.Equal(t, "Invoice", tagged[0].Name)
	assert.Equal(t, "total", tagged[1].Name)
}

func TestDocuments_GroupByPath(t *testing.T) {
	var docs index.Documents
	docs = append(docs, index.NewDocuments("p", "b.rb", 1, sampleViews())...)
	docs = append(docs, index.NewDocuments("p", "a.rb", 2, sampleViews()[:1])...)
	docs = append(docs, nil)

	groups := docs.GroupByPath()
	require.Len(t, groups, 2)
	assert.Equal(t, "b.rb", groups[0].Path)
	assert.Len(t, groups[0].Documents, 3)
	assert.Equal(t, "a.rb", groups[1].Path)
	assert.Len(t, groups[1].Documents, 1)

	docs = docs[:len(docs)-1]
	docs.Sort()
	assert.Equal(t, "a.rb", docs[0].Path)
	assert.Equal(t, 1, docs[1].Line)
	assert.Equal(t, 4, docs[3].Line)
}

func TestHash(t *testing.T) {
	first, err := index.Hash([]byte("module Foo\nend\n"))
	require.NoError(t, err)
	second, err := index.Hash([]byte("module Foo\nend\n"))
	require.NoError(t, err)
	other, err := index.Hash([]byte("module Bar\nend\n"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}
