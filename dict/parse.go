// Package dict loads pattern dictionaries from text files and keeps named,
// compiled dictionaries up to date.
//
// A dictionary file holds one pattern per line. Blank lines and lines starting
// with '#' are skipped. A tab separates the pattern from an optional label;
// without one the label is the pattern itself.
//
//	# colors
//	red	color
//	dark blue	color
//	teal
package dict

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sarthakjha889/go-aho-corasick/textmatch"
)

// ErrEmptyPattern is reported for a line whose pattern is blank.
var ErrEmptyPattern = errors.New("empty pattern")

// Options control how patterns are compiled.
type Options struct {
	CaseInsensitive bool
	Normalise       bool
	Overlapping     bool
}

func (o Options) flags() byte {
	var b byte
	if o.CaseInsensitive {
		b |= 1
	}
	if o.Overlapping {
		b |= 2
	}
	if o.Normalise {
		b |= 4
	}
	return b
}

// Dictionary is a compiled dictionary mapping patterns to labels.
type Dictionary = textmatch.Dictionary[string]

// LineError locates a parse error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Parse reads a dictionary file and returns it built. All malformed lines are
// reported, joined into one error.
func Parse(r io.Reader, opts Options) (*Dictionary, error) {
	d := textmatch.New[string]()
	if opts.CaseInsensitive {
		d.CaseInsensitive()
	}
	if opts.Normalise {
		d.WithNormalisation()
	}
	if opts.Overlapping {
		d.Overlapping()
	}

	var errs []error
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		pattern, label, _ := strings.Cut(line, "\t")
		pattern = strings.TrimSpace(pattern)
		label = strings.TrimSpace(label)
		if pattern == "" {
			errs = append(errs, &LineError{Line: n, Err: ErrEmptyPattern})
			continue
		}
		if label == "" {
			label = pattern
		}
		d.Add(pattern, label)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read: %w", err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	d.Build()
	return d, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(data []byte, opts Options) (*Dictionary, error) {
	return Parse(bytes.NewReader(data), opts)
}
