// File: internal/scoring/scoring_test.go
package scoring

import (
	"context"
	"fmt"
	"strings"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/numo/internal/cipher"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func selectAll(t testing.TB) []cipher.Named {
	t.Helper()
	sel, err := cipher.Default().Select(cipher.SelectAll)
	require.NoError(t, err)
	return sel
}

func TestScoreLine_KnownValues(t *testing.T) {
	tests := []struct {
		text string
		want map[string]int
	}{
		{"hello", map[string]int{"ordinal": 52, "alpha_qabbala": 97, "reduction": 25, "qwerty": 116}},
		{"world", map[string]int{"ordinal": 72, "alpha_qabbala": 117, "reduction": 27, "qwerty": 97}},
		{"test", map[string]int{"ordinal": 64, "alpha_qabbala": 100, "reduction": 10, "qwerty": 65}},
		{"abc", map[string]int{"ordinal": 6, "alpha_qabbala": 33, "reduction": 6, "qwerty": 87}},
		{"xyz", map[string]int{"ordinal": 75, "alpha_qabbala": 102, "reduction": 21, "qwerty": 77}},
	}

	sel := selectAll(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := ScoreLine(tt.text, sel)
			assert.Equal(t, tt.text, res.Line)
			for name, want := range tt.want {
				assert.Equal(t, want, res.Score(name), name)
			}
		})
	}
}

func TestScore(t *testing.T) {
	alpha, _ := cipher.Default().Lookup(cipher.AlphaQabbala)
	qwerty, _ := cipher.Default().Lookup(cipher.Qwerty)

	assert.Equal(t, 0, Score("", alpha))
	assert.Equal(t, 0, Score("  !?,.", alpha))
	assert.Equal(t, Score("hello", alpha), Score("HeLLo", alpha))
	assert.Equal(t, 45, Score("0123456789", alpha))
	assert.Equal(t, 55, Score("1234567890", qwerty))
	assert.Equal(t, 97, Score("h-e l_l\to", alpha))
}

func TestStripAnnotations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no brackets", "hello", "hello"},
		{"single annotation", "hello [note]", "hello "},
		{"multiple annotations", "[a]b[c]d[e]", "bd"},
		{"shortest match", "a[b]c]d", "ac]d"},
		{"nested opening pairs with nearest close", "a[b[c]d]e", "ad]e"},
		{"unterminated left alone", "abc [def", "abc [def"},
		{"unterminated after terminated", "[x]y[z", "y[z"},
		{"empty annotation", "a[]b", "ab"},
		{"stray close", "a]b", "a]b"},
		{"carriage return blocks match", "a[b\rc]d", "a[b\rc]d"},
		{"annotation after carriage return", "a\r[b]c", "a\rc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripAnnotations(tt.in))
		})
	}
}

func TestScoreLine_AnnotationsExcluded(t *testing.T) {
	sel := selectAll(t)
	plain := ScoreLine("hello", sel)
	annotated := ScoreLine(`hello [world "quoted"]`, sel)

	assert.Equal(t, `hello [world "quoted"]`, annotated.Line, "original text must be kept")
	if diff := cmp.Diff(plain.Scores, annotated.Scores); diff != "" {
		t.Errorf("annotation changed scores (-plain +annotated):\n%s", diff)
	}
}

func TestScoreLine_SelectionOrderAndDuplicates(t *testing.T) {
	sel, err := cipher.Default().Select("reduction,ordinal,reduction")
	require.NoError(t, err)

	res := ScoreLine("abc", sel)
	want := []Entry{
		{Cipher: "reduction", Value: 6},
		{Cipher: "ordinal", Value: 6},
		{Cipher: "reduction", Value: 6},
	}
	if diff := cmp.Diff(want, res.Scores); diff != "" {
		t.Errorf("Scores mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, res.Score("qwerty"), "unselected cipher scores 0")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{""}, SplitLines(""))
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\nb\nc"))
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a\r", "b"}, SplitLines("a\r\nb"))
}

func TestScoreLines(t *testing.T) {
	sel := selectAll(t)
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d [skip %d] %s", i, i, strings.Repeat("z", i%7))
	}

	sequential, err := ScoreLines(context.Background(), lines, sel, 1)
	require.NoError(t, err)
	require.Len(t, sequential, len(lines))

	for _, workers := range []int{0, 2, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := ScoreLines(context.Background(), lines, sel, workers)
			require.NoError(t, err)
			if diff := cmp.Diff(sequential, got); diff != "" {
				t.Errorf("results differ from sequential run (-want +got):\n%s", diff)
			}
		})
	}

	for i, res := range sequential {
		assert.Equal(t, lines[i], res.Line)
	}
}

func TestScoreLines_Cancelled(t *testing.T) {
	sel := selectAll(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		res, err := ScoreLines(ctx, []string{"a", "b", "c"}, sel, workers)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
	}
}

func TestScoreLines_Empty(t *testing.T) {
	res, err := ScoreLines(context.Background(), nil, selectAll(t), 4)
	require.NoError(t, err)
	assert.Empty(t, res)
}

// sanitizeAnnotation drops characters that would end an annotation early.
func sanitizeAnnotation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ']', '\r', '\n', '\u2028', '\u2029':
			return -1
		}
		return r
	}, s)
}

// FuzzScoreProperties checks the scoring invariants over generated text.
func FuzzScoreProperties(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte("Hello [World]\x00abc"))
	f.Add([]byte{0xff, 0xfe, '[', ']'})

	sel := selectAll(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzz.NewConsumer(data)
		text, err := consumer.GetString()
		if err != nil {
			return
		}
		note, err := consumer.GetString()
		if err != nil {
			note = ""
		}
		// An unmatched '[' in the text would pair with the appended annotation.
		text = strings.ReplaceAll(text, "[", "")
		note = sanitizeAnnotation(note)

		for _, n := range sel {
			base := Score(text, n.Cipher)
			if base < 0 {
				t.Fatalf("%s: negative score %d for %q", n.Name, base, text)
			}
			if lower := Score(strings.ToLower(text), n.Cipher); lower != base {
				t.Fatalf("%s: case sensitivity for %q: %d != %d", n.Name, text, lower, base)
			}
		}

		plain := ScoreLine(text, sel)
		annotated := ScoreLine(text+"["+note+"]", sel)
		if diff := cmp.Diff(plain.Scores, annotated.Scores); diff != "" {
			t.Fatalf("annotation %q contributed to %q:\n%s", note, text, diff)
		}
	})
}
