// Package config holds the settings for a samplesheet run and the rules
// that make a combination of settings usable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vertti/samplesheet/internal/sample"
	"github.com/vertti/samplesheet/internal/samplesheet"
	"github.com/vertti/samplesheet/internal/source"
)

// Usage errors.
var (
	ErrNoInput            = errors.New("an amino acid string or a directory is required")
	ErrBothInputs         = errors.New("an amino acid string and a directory are mutually exclusive")
	ErrNegativeSeqChars   = errors.New("seq-chars must not be negative")
	ErrUnknownFormat      = samplesheet.ErrUnsupportedFormat
	ErrUnknownMatchTarget = source.ErrUnknownMatchTarget
	ErrUnknownLogLevel    = errors.New("unknown log level")
	ErrInvalidConfig      = errors.New("invalid config file")
)

// IsUsage reports whether err stems from invalid settings rather than from
// reading or writing files.
func IsUsage(err error) bool {
	for _, target := range []error{ErrNoInput, ErrBothInputs, ErrNegativeSeqChars, ErrUnknownFormat, ErrUnknownMatchTarget, ErrUnknownLogLevel, ErrInvalidConfig} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// InputKind tells where samples come from.
type InputKind int

// Input kinds.
const (
	InputSequence InputKind = iota
	InputDirectory
)

func (k InputKind) String() string {
	if k == InputDirectory {
		return "directory"
	}
	return "sequence"
}

// Config is the full set of options for one run. Field tags name the keys
// accepted in a YAML config file.
type Config struct {
	Sequence  string `yaml:"aa_string"`
	Directory string `yaml:"directory"`

	Format samplesheet.Format `yaml:"format"`
	Output string             `yaml:"output_file"`

	// Manually entered sequence
	Prefix    string `yaml:"prefix"`
	Suffix    string `yaml:"suffix"`
	Delim     string `yaml:"delim"`
	Extension string `yaml:"output_extension"`
	SeqChars  int    `yaml:"seq_chars"`
	FastaDir  string `yaml:"fasta_dir"`
	MSAPath   string `yaml:"msa"`

	// Directory mode
	MatchPattern string             `yaml:"fasta_match"`
	MatchOn      source.MatchTarget `yaml:"match_on"`
	SingleRecord bool               `yaml:"single_record"`
	MSADir       string             `yaml:"msa_dir"`
	MSAExtension string             `yaml:"msa_extension"`

	SequenceHeader string `yaml:"sequence_header"`
	FastaHeader    string `yaml:"fasta_header"`
	YAMLVersion    int    `yaml:"yaml_version"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	fn := sample.DefaultFileNameOptions()
	out := samplesheet.DefaultOptions()
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Format:         samplesheet.FormatCSV,
		Output:         "samplesheet.csv",
		Prefix:         fn.Prefix,
		Suffix:         fn.Suffix,
		Delim:          fn.Delim,
		Extension:      fn.Extension,
		SeqChars:       sample.DefaultSeqChars,
		FastaDir:       cwd,
		MatchPattern:   source.DefaultPattern,
		MatchOn:        source.MatchName,
		MSAExtension:   "a3m",
		SequenceHeader: out.SequenceHeader,
		FastaHeader:    out.FastaHeader,
		YAMLVersion:    out.YAMLVersion,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file over the defaults. A file that cannot be
// opened is an I/O error; unknown keys and malformed YAML are ErrInvalidConfig.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path) //nolint:gosec // user-selected config file
	if err != nil {
		return cfg, fmt.Errorf("cannot open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: cannot parse config %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Input returns the selected input kind. Call Validate first.
func (c *Config) Input() InputKind {
	if c.Directory != "" {
		return InputDirectory
	}
	return InputSequence
}

// Validate checks the settings for a run.
func (c *Config) Validate() error {
	switch {
	case c.Sequence == "" && c.Directory == "":
		return ErrNoInput
	case c.Sequence != "" && c.Directory != "":
		return ErrBothInputs
	case c.SeqChars < 0:
		return fmt.Errorf("%w: %d", ErrNegativeSeqChars, c.SeqChars)
	}
	if _, err := samplesheet.ParseFormat(c.Format.String()); err != nil {
		return err
	}
	if _, err := source.ParseMatchTarget(c.MatchOn.String()); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// FileNameOptions returns the file name settings for a manual entry.
func (c *Config) FileNameOptions() sample.FileNameOptions {
	return sample.FileNameOptions{
		Prefix:    c.Prefix,
		Delim:     c.Delim,
		Suffix:    c.Suffix,
		Extension: c.Extension,
	}
}

// OutputOptions returns the serialization settings.
func (c *Config) OutputOptions() samplesheet.Options {
	return samplesheet.Options{
		SequenceHeader: c.SequenceHeader,
		FastaHeader:    c.FastaHeader,
		YAMLVersion:    c.YAMLVersion,
	}
}
