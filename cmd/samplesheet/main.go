// samplesheet builds samplesheets from an amino acid string or a directory
// of FASTA files.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vertti/samplesheet/internal/config"
)

var version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

// usageError marks command line mistakes that cobra reports, such as a
// non-integer --seq-chars.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsage(err error) bool {
	var ue usageError
	return errors.As(err, &ue) || config.IsUsage(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if isUsage(err) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
			return exitUsage
		}
		return exitError
	}
	return exitSuccess
}
