// File: internal/reporting/json_reporter.go
package reporting

import (
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/numo/internal/scoring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the JSON report layout.
type Document struct {
	Ciphers []string       `json:"ciphers"`
	Lines   []DocumentLine `json:"lines"`
}

// DocumentLine is one scored line of a JSON report.
type DocumentLine struct {
	Line   string         `json:"line"`
	Scores map[string]int `json:"scores"`
}

// JSONReporter collects results and writes a single Document on Close.
type JSONReporter struct {
	mu     sync.Mutex
	out    sink
	doc    Document
	closed bool
}

func newJSONReporter(out sink, ciphers []string) *JSONReporter {
	return &JSONReporter{
		out: out,
		doc: Document{
			Ciphers: append([]string(nil), ciphers...),
			Lines:   []DocumentLine{},
		},
	}
}

// Write records one line result.
func (r *JSONReporter) Write(result scoring.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("json reporter is closed")
	}

	scores := make(map[string]int, len(r.doc.Ciphers))
	for _, name := range r.doc.Ciphers {
		scores[name] = result.Score(name)
	}
	r.doc.Lines = append(r.doc.Lines, DocumentLine{Line: result.Line, Scores: scores})
	return nil
}

// Close encodes the document and commits it.
func (r *JSONReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		r.out.Discard()
		return fmt.Errorf("failed to serialize report to JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.out.Write(data); err != nil {
		r.out.Discard()
		return fmt.Errorf("failed to write json report: %w", err)
	}
	return r.out.Commit()
}

// Abort drops the report without committing it.
func (r *JSONReporter) Abort() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.out.Discard()
}
