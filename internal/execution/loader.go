package execution

import (
	"fmt"

	"ntl/internal/domain"
	"ntl/internal/parser"
)

// FileResult is the outcome of loading one record file
type FileResult struct {
	Path    string
	Records []domain.Record
	Err     error
}

// Loader parses a single record file
type Loader struct {
	parser parser.Parser
}

// NewLoader creates a new Loader
func NewLoader(p parser.Parser) *Loader {
	return &Loader{parser: p}
}

// Load parses path. A file that fails to parse contributes no records.
func (l *Loader) Load(path string) FileResult {
	records, err := l.parser.ParseFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}
	return FileResult{Path: path, Records: records}
}
