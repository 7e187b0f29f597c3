// Package sample defines the samplesheet entry and the helpers that derive
// its identifiers.
package sample

// DefaultSeqChars is the number of residues used for a short sample name.
const DefaultSeqChars = 6

// Sample is one samplesheet entry.
type Sample struct {
	Name     string // Header text or short name, never sanitized here
	Path     string // FASTA file holding this sample
	Sequence string // Concatenated residues, empty until read or filled
	MSAPath  string // Optional precomputed alignment
}

// ShortName returns the first maxChars characters (runes) of seq, or all of
// seq if it is shorter. A negative maxChars yields the empty string.
func ShortName(seq string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	n := 0
	for i := range seq {
		if n == maxChars {
			return seq[:i]
		}
		n++
	}
	return seq
}

// FileNameOptions controls file name synthesis for manually entered sequences.
type FileNameOptions struct {
	Prefix    string
	Delim     string
	Suffix    string
	Extension string
}

// DefaultFileNameOptions returns the options used when none are given.
func DefaultFileNameOptions() FileNameOptions {
	return FileNameOptions{
		Prefix:    "manual_entry",
		Delim:     "-",
		Suffix:    "af2",
		Extension: "fasta",
	}
}

// FileName builds "{prefix}{delim}{id}{delim}{suffix}.{extension}".
func FileName(id string, opts FileNameOptions) string {
	return opts.Prefix + opts.Delim + id + opts.Delim + opts.Suffix + "." + opts.Extension
}
