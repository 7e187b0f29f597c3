// Package source finds FASTA files in a directory and opens them, undoing
// gzip or zstd compression when present.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// DefaultPattern matches .fa, .fasta, .faa and their compressed forms.
const DefaultPattern = `.*\.fa.*$`

// MatchTarget selects what a Matcher pattern is tested against.
type MatchTarget int

const (
	// MatchName tests the base file name.
	MatchName MatchTarget = iota
	// MatchPath tests the directory-joined path.
	MatchPath
)

func (t MatchTarget) String() string {
	switch t {
	case MatchName:
		return "name"
	case MatchPath:
		return "path"
	default:
		return fmt.Sprintf("MatchTarget(%d)", int(t))
	}
}

// ErrUnknownMatchTarget is returned for a target other than name or path.
var ErrUnknownMatchTarget = errors.New("unknown match target")

// ParseMatchTarget maps "name" or "path" to a MatchTarget.
func ParseMatchTarget(s string) (MatchTarget, error) {
	switch strings.ToLower(s) {
	case "name":
		return MatchName, nil
	case "path":
		return MatchPath, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMatchTarget, s)
	}
}

// UnmarshalYAML accepts "name" or "path".
func (t *MatchTarget) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMatchTarget(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Matcher filters directory entries. A nil Pattern matches everything.
type Matcher struct {
	Pattern *regexp.Regexp
	Target  MatchTarget
}

// NewMatcher compiles pattern for the given target.
func NewMatcher(pattern string, target MatchTarget) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	return Matcher{Pattern: re, Target: target}, nil
}

// Match reports whether the file name (found in dir) is selected.
func (m Matcher) Match(dir, name string) bool {
	if m.Pattern == nil {
		return true
	}
	if m.Target == MatchPath {
		return m.Pattern.MatchString(filepath.Join(dir, name))
	}
	return m.Pattern.MatchString(name)
}

// List returns the paths of regular files in dir selected by m, in lexical
// order. Subdirectories are not descended into.
func List(dir string, m Matcher) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if m.Match(dir, e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Compression identifies an input encoding.
type Compression int

// Known input encodings.
const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path for reading. The returned cleanup closes every layer and
// must be called once the reader is no longer needed.
func Open(path string) (io.Reader, func(), error) {
	f, err := os.Open(path) //nolint:gosec // CLI tool reads user-selected files
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input: %w", err)
	}
	return Wrap(path, f, func() { _ = f.Close() })
}

// Wrap inspects in and, when it is compressed, layers a decoder over it.
// The compression is taken from the path suffix or, failing that, from the
// leading magic bytes. closeInput is called by the returned cleanup, or
// immediately if Wrap fails.
func Wrap(path string, in io.Reader, closeInput func()) (io.Reader, func(), error) {
	br := bufio.NewReaderSize(in, 1<<16)
	c, err := Detect(path, br)
	if err != nil {
		closeInput()
		return nil, nil, fmt.Errorf("cannot inspect input: %w", err)
	}

	switch c {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			closeInput()
			return nil, nil, fmt.Errorf("cannot open gzip input: %w", err)
		}
		return gz, func() {
			_ = gz.Close()
			closeInput()
		}, nil
	case Zstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			closeInput()
			return nil, nil, fmt.Errorf("cannot open zstd input: %w", err)
		}
		return zr, func() {
			zr.Close()
			closeInput()
		}, nil
	default:
		return br, closeInput, nil
	}
}

// Detect reports the compression of br without consuming any input.
func Detect(path string, br *bufio.Reader) (Compression, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return Gzip, nil
	case strings.HasSuffix(lower, ".zst"):
		return Zstd, nil
	}

	header, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return None, err
	}
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip, nil
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd, nil
	default:
		return None, nil
	}
}
