// File: internal/reporting/csv_reporter.go
package reporting

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xkilldash9x/numo/internal/scoring"
)

// CSVReporter renders results as CSV. The first column always holds the
// quoted original line, followed by one integer column per cipher. Rows are
// separated by '\n' with no trailing newline.
type CSVReporter struct {
	mu      sync.Mutex
	out     sink
	buf     *bufio.Writer
	ciphers []string
	closed  bool
}

func newCSVReporter(out sink, ciphers []string) *CSVReporter {
	r := &CSVReporter{
		out:     out,
		buf:     bufio.NewWriter(out),
		ciphers: append([]string(nil), ciphers...),
	}
	header := append([]string{"line"}, r.ciphers...)
	// A write error here sticks to the bufio.Writer and surfaces from Flush in Close.
	r.buf.WriteString(strings.Join(header, ","))
	return r
}

// quoteField wraps s in double quotes, doubling any quotes it contains.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Write appends one row. Ciphers missing from the result are written as 0.
func (r *CSVReporter) Write(result scoring.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("csv reporter is closed")
	}

	var row strings.Builder
	row.WriteByte('\n')
	row.WriteString(quoteField(result.Line))
	for i, name := range r.ciphers {
		var value int
		if i < len(result.Scores) && result.Scores[i].Cipher == name {
			value = result.Scores[i].Value
		} else {
			value = result.Score(name)
		}
		row.WriteByte(',')
		row.WriteString(strconv.Itoa(value))
	}
	if _, err := r.buf.WriteString(row.String()); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// Close flushes the report and commits it.
func (r *CSVReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.buf.Flush(); err != nil {
		r.out.Discard()
		return fmt.Errorf("failed to flush csv report: %w", err)
	}
	return r.out.Commit()
}

// Abort drops the report without committing it.
func (r *CSVReporter) Abort() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.out.Discard()
}
