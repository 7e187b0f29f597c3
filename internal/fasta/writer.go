package fasta

import (
	"io"

	"github.com/vertti/samplesheet/internal/sample"
)

// Write emits s as a single unwrapped FASTA record. No newline follows the
// sequence.
func Write(w io.Writer, s sample.Sample) error {
	_, err := io.WriteString(w, string(HeaderMarker)+s.Name+"\n"+s.Sequence)
	return err
}
