package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagripper/index"
)

func TestParseTagQuery(t *testing.T) {
	tests := []struct {
		description string
		exprs       []string
		expect      map[string]string
		expectErr   bool
	}{
		{description: "name and value", exprs: []string{"domain=Billing"}, expect: map[string]string{"domain": "Billing"}},
		{description: "bare name", exprs: []string{"owner"}, expect: map[string]string{"owner": ""}},
		{description: "at prefix and spaces", exprs: []string{" @domain = Billing "}, expect: map[string]string{"domain": "Billing"}},
		{description: "several", exprs: []string{"domain=A", "owner=b"}, expect: map[string]string{"domain": "A", "owner": "b"}},
		{description: "missing name", exprs: []string{"=Billing"}, expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := index.ParseTagQuery(tc.exprs...)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestDocuments_Filter(t *testing.T) {
	docs := index.NewDocuments("ledger", "lib/invoice.rb", 1, sampleViews())

	tests := []struct {
		description string
		query       index.Query
		expect      []string
	}{
		{description: "empty query", query: index.Query{}, expect: []string{"Billing", "Billing::Invoice", "Billing::Invoice#total"}},
		{description: "by name", query: index.Query{Name: "total"}, expect: []string{"Billing::Invoice#total"}},
		{description: "by fqn", query: index.Query{Name: "Billing::Invoice"}, expect: []string{"Billing::Invoice"}},
		{description: "by tag value", query: index.Query{Tags: map[string]string{"domain": "Billing"}}, expect: []string{"Billing::Invoice"}},
		{description: "by tag any value", query: index.Query{Tags: map[string]string{"domain": ""}}, expect: []string{"Billing::Invoice", "Billing::Invoice#total"}},
		{description: "all tags required", query: index.Query{Tags: map[string]string{"domain": "Totals", "owner": ""}}},
		{description: "name and tag", query: index.Query{Name: "Invoice", Tags: map[string]string{"owner": "payments"}}, expect: []string{"Billing::Invoice"}},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var actual []string
			for _, doc := range docs.Filter(tc.query) {
				actual = append(actual, doc.FQN)
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}
