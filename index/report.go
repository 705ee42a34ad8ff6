package index

// FileError records a file that could not be indexed
type FileError struct {
	Path  string `yaml:"path" json:"path"`
	Error string `yaml:"error" json:"error"`
}

// Stats summarises one indexing run
type Stats struct {
	Files     int `yaml:"files" json:"files"`
	Cached    int `yaml:"cached" json:"cached"`
	Skipped   int `yaml:"skipped" json:"skipped"`
	Recovered int `yaml:"recovered" json:"recovered"`
	Abandoned int `yaml:"abandoned" json:"abandoned"`
}

// Report is the outcome of indexing a project
type Report struct {
	RunID     string      `yaml:"runId" json:"runId"`
	Project   string      `yaml:"project" json:"project"`
	Root      string      `yaml:"root" json:"root"`
	Stats     Stats       `yaml:"stats" json:"stats"`
	Documents Documents   `yaml:"documents" json:"documents"`
	Errors    []FileError `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// Filter returns a copy of the report restricted to documents matching query
func (r *Report) Filter(query Query) *Report {
	ret := *r
	ret.Documents = r.Documents.Filter(query)
	return &ret
}

// TaggedOnly returns a copy of the report without untagged documents
func (r *Report) TaggedOnly() *Report {
	ret := *r
	ret.Documents = r.Documents.Tagged()
	return &ret
}
