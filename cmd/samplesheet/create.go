package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vertti/samplesheet/internal/config"
	"github.com/vertti/samplesheet/internal/fasta"
	"github.com/vertti/samplesheet/internal/sample"
	"github.com/vertti/samplesheet/internal/samplesheet"
	"github.com/vertti/samplesheet/internal/source"
)

func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "samplesheet",
	}), nil
}

type runner struct {
	cfg    config.Config
	logger *log.Logger
	stdout io.Writer
}

func newRunner(cfg config.Config, logger *log.Logger, stdout io.Writer) *runner {
	return &runner{cfg: cfg, logger: logger, stdout: stdout}
}

func (r *runner) run() error {
	var samples []sample.Sample
	var err error

	switch r.cfg.Input() {
	case config.InputSequence:
		samples, err = r.fromSequence()
	case config.InputDirectory:
		samples, err = r.fromDirectory()
	}
	if err != nil {
		return err
	}

	w, finish, err := openOutput(r.cfg.Output, r.stdout)
	if err != nil {
		return err
	}
	if err := samplesheet.Write(w, r.cfg.Format, samples, r.cfg.OutputOptions()); err != nil {
		_ = finish()
		return fmt.Errorf("writing samplesheet: %w", err)
	}
	if err := finish(); err != nil {
		return fmt.Errorf("writing samplesheet: %w", err)
	}

	r.logger.Info("wrote samplesheet", "path", r.cfg.Output, "format", r.cfg.Format, "samples", len(samples))
	return nil
}

// fromSequence writes the amino acid string to its own FASTA file and
// returns the single sample describing it.
func (r *runner) fromSequence() ([]sample.Sample, error) {
	name := sample.ShortName(r.cfg.Sequence, r.cfg.SeqChars)
	s := sample.Sample{
		Name:     name,
		Path:     filepath.Join(r.cfg.FastaDir, sample.FileName(name, r.cfg.FileNameOptions())),
		Sequence: r.cfg.Sequence,
		MSAPath:  r.cfg.MSAPath,
	}

	if err := os.MkdirAll(r.cfg.FastaDir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create fasta directory: %w", err)
	}
	w, finish, err := openOutput(s.Path, r.stdout)
	if err != nil {
		return nil, err
	}
	if err := fasta.Write(w, s); err != nil {
		_ = finish()
		return nil, fmt.Errorf("writing %s: %w", s.Path, err)
	}
	if err := finish(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", s.Path, err)
	}

	r.logger.Debug("wrote fasta", "path", s.Path, "sample", s.Name, "length", len(s.Sequence))
	return []sample.Sample{s}, nil
}

func (r *runner) fromDirectory() ([]sample.Sample, error) {
	m, err := source.NewMatcher(r.cfg.MatchPattern, r.cfg.MatchOn)
	if err != nil {
		return nil, usageError{err: err}
	}
	paths, err := source.List(r.cfg.Directory, m)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listed directory", "dir", r.cfg.Directory, "match", r.cfg.MatchPattern, "on", r.cfg.MatchOn, "files", len(paths))

	var samples []sample.Sample
	for _, path := range paths {
		found, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			r.logger.Warn("no FASTA records found", "path", path)
			continue
		}
		r.logger.Debug("read fasta", "path", path, "samples", len(found))
		samples = append(samples, found...)
	}

	if r.cfg.MSADir != "" {
		for i := range samples {
			if err := r.attachMSA(&samples[i]); err != nil {
				return nil, err
			}
		}
	}
	return samples, nil
}

// readFile parses one FASTA file. In single-record mode only the first
// header is parsed; its sequence is filled from the first full record when
// the output format carries sequences.
func (r *runner) readFile(path string) ([]sample.Sample, error) {
	mode := fasta.AllRecords
	if r.cfg.SingleRecord {
		mode = fasta.FirstHeader
	}

	samples, err := readFasta(path, mode)
	if err != nil {
		return nil, err
	}
	if mode == fasta.FirstHeader && len(samples) == 1 && r.cfg.Format.NeedsSequence() {
		full, err := readFasta(path, fasta.AllRecords)
		if err != nil {
			return nil, err
		}
		samples[0].Sequence = full[0].Sequence
	}
	return samples, nil
}

func readFasta(path string, mode fasta.Mode) ([]sample.Sample, error) {
	in, cleanup, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	samples, err := fasta.Read(in, path, mode)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return samples, nil
}

// attachMSA sets s.MSAPath when <msa-dir>/<sanitized name>.<ext> exists.
func (r *runner) attachMSA(s *sample.Sample) error {
	candidate := filepath.Join(r.cfg.MSADir, sample.Sanitize(s.Name)+"."+r.cfg.MSAExtension)
	info, err := os.Stat(candidate)
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.logger.Debug("no alignment", "sample", s.Name, "path", candidate)
		return nil
	case err != nil:
		return fmt.Errorf("cannot inspect alignment: %w", err)
	case info.IsDir():
		return nil
	}
	s.MSAPath = candidate
	return nil
}

// openOutput returns a buffered writer for path, or for stdout when path is
// "-". finish flushes and closes it.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriterSize(stdout, 1<<16)
		return bw, bw.Flush, nil
	}

	f, err := os.Create(path) //nolint:gosec // CLI tool needs to create user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output: %w", err)
	}
	bw := bufio.NewWriterSize(f, 1<<16)
	return bw, func() error {
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}, nil
}
