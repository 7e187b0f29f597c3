package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vertti/samplesheet/internal/config"
	"github.com/vertti/samplesheet/internal/sample"
	"github.com/vertti/samplesheet/internal/samplesheet"
	"github.com/vertti/samplesheet/internal/source"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "samplesheet",
		Short:         "Create samplesheets from an amino acid string or a directory of FASTA files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.AddCommand(newCreateCmd(), newSampleNameCmd())
	return root
}

func checkArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

type createOptions struct {
	cfg        config.Config
	configPath string
	verbose    bool
}

func newCreateCmd() *cobra.Command {
	opts := &createOptions{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a samplesheet for an amino acid string or a FASTA directory",
		Example: `  samplesheet create -a MPGAFSQNSSKRRAVLPRSHR -t fastas -o samplesheet.csv
  samplesheet create -d fastas --format yaml -o boltz.yaml
  samplesheet create -d fastas -j --single-record -o entities.json`,
		Args: checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), &cfg)
			if err != nil {
				return err
			}
			return newRunner(cfg, logger, cmd.OutOrStdout()).run()
		},
	}

	flags := cmd.Flags()
	bindCreateFlags(flags, &opts.cfg)
	flags.StringVar(&opts.configPath, "config", "", "YAML config file; flags given on the command line take precedence")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "shorthand for --log-level debug")
	flags.SortFlags = false

	return cmd
}

// resolve merges the config file, if any, with the flags that were set.
func (o *createOptions) resolve(flags *pflag.FlagSet) (config.Config, error) {
	cfg := o.cfg
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return loaded, err
		}

		overrides := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
		bindCreateFlags(overrides, &loaded)

		var setErr error
		flags.Visit(func(f *pflag.Flag) {
			if setErr != nil || overrides.Lookup(f.Name) == nil {
				return
			}
			setErr = overrides.Set(f.Name, f.Value.String())
		})
		if setErr != nil {
			return loaded, usageError{err: setErr}
		}
		cfg = loaded
	}

	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// bindCreateFlags registers the create flags on fs. Each flag defaults to
// the current value in cfg.
func bindCreateFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVarP(&cfg.Sequence, "aa-string", "a", cfg.Sequence, "single amino acid string")
	fs.StringVarP(&cfg.Directory, "directory", "d", cfg.Directory, "directory containing FASTA files")

	fs.VarP(formatValue{&cfg.Format}, "format", "", "samplesheet format: csv, json or yaml")
	fs.VarPF(formatValue{&cfg.Format}, "json", "j", "shorthand for --format json").NoOptDefVal = "json"
	fs.StringVarP(&cfg.Output, "output-file", "o", cfg.Output, `samplesheet file, "-" for stdout`)

	fs.StringVarP(&cfg.Prefix, "prefix", "p", cfg.Prefix, "file name prefix for amino acid strings")
	fs.StringVarP(&cfg.Suffix, "suffix", "s", cfg.Suffix, "file name suffix for amino acid strings")
	fs.StringVarP(&cfg.Delim, "delim", "u", cfg.Delim, "delimiter between the fields of the amino acid string file name")
	fs.StringVarP(&cfg.Extension, "output-extension", "x", cfg.Extension, "extension of the FASTA file written for an amino acid string")
	fs.IntVarP(&cfg.SeqChars, "seq-chars", "c", cfg.SeqChars, "number of sequence characters used in the sample name")
	fs.StringVarP(&cfg.FastaDir, "fasta-dir", "t", cfg.FastaDir, "directory for FASTA files written for amino acid strings")
	fs.StringVar(&cfg.MSAPath, "msa", cfg.MSAPath, "precomputed alignment for the amino acid string")

	fs.StringVarP(&cfg.MatchPattern, "fasta-match", "r", cfg.MatchPattern, "regular expression selecting FASTA files in directory mode")
	fs.Var(matchTargetValue{&cfg.MatchOn}, "match-on", "what --fasta-match is tested against: name or path")
	fs.BoolVar(&cfg.SingleRecord, "single-record", cfg.SingleRecord, "one sample per file, named by its first header")
	fs.StringVar(&cfg.MSADir, "msa-dir", cfg.MSADir, "directory searched for <sample>.<msa-ext> alignments")
	fs.StringVar(&cfg.MSAExtension, "msa-ext", cfg.MSAExtension, "alignment file extension used with --msa-dir")

	fs.StringVarP(&cfg.SequenceHeader, "sequence-header", "q", cfg.SequenceHeader, "CSV column name for the sample")
	fs.StringVarP(&cfg.FastaHeader, "fasta-header", "f", cfg.FastaHeader, "CSV column name for the FASTA path")
	fs.IntVar(&cfg.YAMLVersion, "yaml-version", cfg.YAMLVersion, "version field of YAML samplesheets")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}

func newSampleNameCmd() *cobra.Command {
	seqChars := sample.DefaultSeqChars

	cmd := &cobra.Command{
		Use:   "sample-name SEQUENCE",
		Short: "Print the sample name derived from an amino acid string",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seqChars < 0 {
				return fmt.Errorf("%w: %d", config.ErrNegativeSeqChars, seqChars)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), sample.ShortName(args[0], seqChars))
			return err
		},
	}
	cmd.Flags().IntVarP(&seqChars, "seq-chars", "c", seqChars, "number of sequence characters used in the sample name")

	return cmd
}

type formatValue struct{ p *samplesheet.Format }

func (v formatValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v formatValue) Set(s string) error {
	f, err := samplesheet.ParseFormat(s)
	if err != nil {
		return err
	}
	*v.p = f
	return nil
}

func (formatValue) Type() string { return "format" }

type matchTargetValue struct{ p *source.MatchTarget }

func (v matchTargetValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v matchTargetValue) Set(s string) error {
	t, err := source.ParseMatchTarget(s)
	if err != nil {
		return err
	}
	*v.p = t
	return nil
}

func (matchTargetValue) Type() string { return "target" }
