// Package fasta reads and writes FASTA records as samplesheet samples.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/vertti/samplesheet/internal/sample"
)

// HeaderMarker starts every FASTA header line.
const HeaderMarker = '>'

// Mode selects how much of a FASTA source is parsed.
type Mode int

const (
	// AllRecords returns every record with its concatenated sequence.
	AllRecords Mode = iota
	// FirstHeader stops at the first header and returns a single sample
	// whose sequence is left empty for the caller to fill.
	FirstHeader
)

func (m Mode) String() string {
	switch m {
	case AllRecords:
		return "all-records"
	case FirstHeader:
		return "first-header"
	default:
		return "unknown"
	}
}

// headerName reports whether line is a header and returns its name.
func headerName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != HeaderMarker {
		return "", false
	}
	return strings.TrimSpace(trimmed[1:]), true
}

// Parse splits FASTA lines into samples in header order. Lines before the
// first header are dropped; input without headers yields no samples.
func Parse(lines []string, mode Mode) []sample.Sample {
	var samples []sample.Sample
	var current *sample.Sample
	var seq strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Sequence = seq.String()
		samples = append(samples, *current)
		seq.Reset()
	}

	for _, line := range lines {
		if name, ok := headerName(line); ok {
			if mode == FirstHeader {
				return []sample.Sample{{Name: name}}
			}
			flush()
			current = &sample.Sample{Name: name}
			continue
		}
		if current == nil {
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()

	return samples
}

// Read parses all of r and stamps every sample with path.
func Read(r io.Reader, path string, mode Mode) ([]sample.Sample, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	samples := Parse(lines, mode)
	for i := range samples {
		samples[i].Path = path
	}
	return samples, nil
}

// readLines reads r to the end, splitting on newlines and dropping a
// trailing CR from each line.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	var lines []string
	var line []byte

	for {
		segment, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		line = append(line, segment...)
		if isPrefix {
			continue
		}

		lines = append(lines, string(bytes.TrimSuffix(line, []byte{'\r'})))
		line = line[:0]
	}

	return lines, nil
}
