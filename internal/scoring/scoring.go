// File: internal/scoring/scoring.go
package scoring

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/numo/internal/cipher"
)

// annotationPattern matches a bracketed annotation. A '[' pairs with the
// nearest following ']' on the same line; '[' without a partner is kept.
var annotationPattern = regexp.MustCompile(`\[[^\]\r\n\x{2028}\x{2029}]*\]`)

// Entry is the score of a line under one cipher.
type Entry struct {
	Cipher string `json:"cipher"`
	Value  int    `json:"value"`
}

// Result holds the unmodified line and its scores in selection order.
type Result struct {
	Line   string
	Scores []Entry
}

// Score returns the score of the line under the named cipher, or 0 when the
// cipher was not part of the selection.
func (r Result) Score(name string) int {
	for _, e := range r.Scores {
		if e.Cipher == name {
			return e.Value
		}
	}
	return 0
}

// StripAnnotations removes every bracketed annotation from line.
func StripAnnotations(line string) string {
	return annotationPattern.ReplaceAllLiteralString(line, "")
}

// Score sums the cipher values of every character in text, case-insensitively.
// Characters the cipher does not define add nothing.
func Score(text string, c cipher.Cipher) int {
	total := 0
	for _, r := range strings.ToLower(text) {
		if v, ok := c.Value(r); ok {
			total += v
		}
	}
	return total
}

// ScoreLine scores line under each selected cipher. Annotations are stripped
// before scoring; the result keeps the original text.
func ScoreLine(line string, selection []cipher.Named) Result {
	clean := StripAnnotations(line)
	scores := make([]Entry, len(selection))
	for i, n := range selection {
		scores[i] = Entry{Cipher: n.Name, Value: Score(clean, n.Cipher)}
	}
	return Result{Line: line, Scores: scores}
}

// SplitLines splits text on '\n'. A trailing newline produces a final empty
// line, and an empty text is a single empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// ScoreLines scores every line with up to workers goroutines. Results are
// returned in input order. A workers value below 2 scores sequentially.
func ScoreLines(ctx context.Context, lines []string, selection []cipher.Named, workers int) ([]Result, error) {
	results := make([]Result, len(lines))

	if workers < 2 {
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = ScoreLine(line, selection)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ScoreLine(line, selection)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop early on cancellation without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
