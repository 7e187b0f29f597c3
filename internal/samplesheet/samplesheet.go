// Package samplesheet serializes samples as CSV tables, JSON entity
// documents and YAML configuration documents.
package samplesheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vertti/samplesheet/internal/sample"
)

// Format selects the samplesheet serialization.
type Format int

// Supported formats.
const (
	FormatCSV Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// UnmarshalYAML accepts a format name.
func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseFormat(value.Value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// NeedsSequence reports whether the format serializes sequence data.
func (f Format) NeedsSequence() bool {
	return f == FormatJSON || f == FormatYAML
}

// Defaults for Options.
const (
	DefaultSequenceHeader = "sequence"
	DefaultFastaHeader    = "fasta"
	DefaultYAMLVersion    = 1
)

// ErrUnsupportedFormat is returned by Write for an unknown Format.
var ErrUnsupportedFormat = errors.New("unsupported samplesheet format")

// Options carries the per-format settings used by Write.
type Options struct {
	SequenceHeader string // CSV column for the sample name
	FastaHeader    string // CSV column for the FASTA path
	YAMLVersion    int
}

// DefaultOptions returns the column names and document version used when
// nothing else is configured.
func DefaultOptions() Options {
	return Options{
		SequenceHeader: DefaultSequenceHeader,
		FastaHeader:    DefaultFastaHeader,
		YAMLVersion:    DefaultYAMLVersion,
	}
}

// Write serializes samples to w in the given format.
func Write(w io.Writer, f Format, samples []sample.Sample, opts Options) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, samples, opts.SequenceHeader, opts.FastaHeader)
	case FormatJSON:
		return WriteJSON(w, samples)
	case FormatYAML:
		return WriteYAML(w, samples, opts.YAMLVersion)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// WriteCSV writes a two-column table: the sanitized sample name and its
// FASTA path. Fields are written literally, without CSV quoting; the name is
// sanitized and the path is taken as given.
func WriteCSV(w io.Writer, samples []sample.Sample, seqHeader, fastaHeader string) error {
	if _, err := io.WriteString(w, seqHeader+","+fastaHeader+"\n"); err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := io.WriteString(w, sample.Sanitize(s.Name)+","+s.Path+"\n"); err != nil {
			return err
		}
	}
	return nil
}

type entity struct {
	Type     string `json:"type"`
	Sequence string `json:"sequence"`
	Count    string `json:"count"`
}

type entityDocument struct {
	Entities []entity `json:"entities"`
}

// WriteJSON writes {"entities": [...]} with one protein entity per sample.
func WriteJSON(w io.Writer, samples []sample.Sample) error {
	doc := entityDocument{Entities: make([]entity, 0, len(samples))}
	for _, s := range samples {
		doc.Entities = append(doc.Entities, entity{Type: "protein", Sequence: s.Sequence, Count: "1"})
	}
	return json.NewEncoder(w).Encode(doc)
}

type protein struct {
	ID       string `yaml:"id"`
	MSA      string `yaml:"msa,omitempty"`
	Sequence string `yaml:"sequence"`
}

type sequenceEntry struct {
	Protein protein `yaml:"protein"`
}

type configDocument struct {
	Sequences []sequenceEntry `yaml:"sequences"`
	Version   int             `yaml:"version"`
}

// WriteYAML writes a structure-prediction input document listing each
// sample as a protein. The msa key appears only for samples with an
// alignment path.
func WriteYAML(w io.Writer, samples []sample.Sample, version int) error {
	doc := configDocument{Sequences: make([]sequenceEntry, 0, len(samples)), Version: version}
	for _, s := range samples {
		doc.Sequences = append(doc.Sequences, sequenceEntry{Protein: protein{
			ID:       s.Name,
			MSA:      s.MSAPath,
			Sequence: s.Sequence,
		}})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
