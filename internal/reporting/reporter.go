// File: internal/reporting/reporter.go
package reporting

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/xkilldash9x/numo/internal/scoring"
)

// Supported report formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// Reporter writes scored lines to an output.
type Reporter interface {
	// Write appends a single line result.
	Write(result scoring.Result) error
	// Close finalizes the report and commits it to its destination.
	Close() error
	// Abort discards everything written so far. Calling Close afterwards is a no-op.
	Abort() error
}

// sink is the destination a reporter streams into. Commit publishes the
// output, Discard throws it away.
type sink interface {
	io.Writer
	Commit() error
	Discard() error
}

// stdoutSink writes straight to the command's output; there is nothing to
// commit. A terminal gets a final newline so the prompt starts on its own line.
type stdoutSink struct {
	w        io.Writer
	terminal bool
	last     byte
}

func newStdoutSink(w io.Writer) *stdoutSink {
	s := &stdoutSink{w: w}
	if f, ok := w.(*os.File); ok {
		s.terminal = term.IsTerminal(int(f.Fd()))
	}
	return s
}

func (s *stdoutSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if n > 0 {
		s.last = p[n-1]
	}
	return n, err
}

func (s *stdoutSink) Commit() error {
	if s.terminal && s.last != '\n' {
		_, err := io.WriteString(s.w, "\n")
		return err
	}
	return nil
}

func (s *stdoutSink) Discard() error { return nil }

// directFile writes through an existing non-regular file such as a device or
// a FIFO, which cannot be replaced by a rename.
type directFile struct {
	*os.File
	target string
	done   bool
}

func (d *directFile) Commit() error {
	if d.done {
		return nil
	}
	d.done = true
	if err := d.File.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", d.target, err)
	}
	return nil
}

func (d *directFile) Discard() error {
	if d.done {
		return nil
	}
	d.done = true
	d.File.Close()
	return nil
}

// atomicFile writes to a temporary file next to the target and renames it
// into place on Commit, so a failed run never leaves a partial report.
type atomicFile struct {
	*os.File
	target string
	done   bool
}

func newAtomicFile(target string) (*atomicFile, error) {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", target, err)
	}
	return &atomicFile{File: tmp, target: target}, nil
}

func (a *atomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	name := a.File.Name()
	if err := a.File.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("failed to close output file %s: %w", a.target, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("failed to set permissions on %s: %w", a.target, err)
	}
	if err := os.Rename(name, a.target); err != nil {
		os.Remove(name)
		return fmt.Errorf("failed to write output file %s: %w", a.target, err)
	}
	return nil
}

func (a *atomicFile) Discard() error {
	if a.done {
		return nil
	}
	a.done = true
	name := a.File.Name()
	a.File.Close()
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary output %s: %w", name, err)
	}
	return nil
}

// maxLinkHops bounds how far a dangling symlink chain is followed.
const maxLinkHops = 40

// openFile picks the sink for a file path. Symlinks are followed so the
// file they point at receives the report. Regular and missing files are
// replaced atomically; anything else is opened and truncated in place.
func openFile(target string) (sink, error) {
	resolved, err := filepath.EvalSymlinks(target)
	if errors.Is(err, fs.ErrNotExist) {
		return newAtomicFile(linkDestination(target))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", target, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", target, err)
	}
	if info.Mode().IsRegular() {
		return newAtomicFile(resolved)
	}

	f, err := os.OpenFile(resolved, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", target, err)
	}
	return &directFile{File: f, target: target}, nil
}

// linkDestination follows a chain of symlinks whose final target does not
// exist yet and returns the path that should be created.
func linkDestination(path string) string {
	for i := 0; i < maxLinkHops; i++ {
		dest, err := os.Readlink(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return path
}

// New creates a reporter for format writing to outputPath. ciphers lists the
// selected cipher names in column order. An outputPath of "-" writes to
// stdout, or to os.Stdout when stdout is nil.
func New(format, outputPath string, ciphers []string, stdout io.Writer) (Reporter, error) {
	if format != FormatCSV && format != FormatJSON {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	var out sink
	if outputPath == StdoutPath {
		if stdout == nil {
			stdout = os.Stdout
		}
		out = newStdoutSink(stdout)
	} else {
		f, err := openFile(outputPath)
		if err != nil {
			return nil, err
		}
		out = f
	}

	if format == FormatJSON {
		return newJSONReporter(out, ciphers), nil
	}
	return newCSVReporter(out, ciphers), nil
}
