package sample

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		maxChars int
		want     string
	}{
		{"longer than limit", "MPGAFSQNSSKRRAVLPRSHR", DefaultSeqChars, "MPGAFS"},
		{"shorter than limit", "MPG", DefaultSeqChars, "MPG"},
		{"exactly limit", "MPGAFS", DefaultSeqChars, "MPGAFS"},
		{"zero", "MPGAFS", 0, ""},
		{"empty input", "", 4, ""},
		{"custom limit", "MPGAFSQNSS", 9, "MPGAFSQNS"},
		{"multibyte first rune", "ÅBCDEFGH", 1, "Å"},
		{"multibyte", "αβγδεζηθ", 6, "αβγδεζ"},
		{"multibyte shorter than limit", "αβγ", 6, "αβγ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortName(tt.seq, tt.maxChars))
		})
	}
}

func TestShortNameIsPrefix(t *testing.T) {
	for _, seq := range []string{"ACDEFGHIKLMNPQRSTVWY", "MPGÅαβ-γδ", "日本語のタンパク質"} {
		count := utf8.RuneCountInString(seq)
		for n := 0; n <= count+3; n++ {
			got := ShortName(seq, n)
			assert.Equal(t, min(n, count), utf8.RuneCountInString(got), "%q n=%d", seq, n)
			assert.True(t, utf8.ValidString(got), "%q n=%d", seq, n)
			assert.True(t, strings.HasPrefix(seq, got))
		}
	}
}

func TestFileNameDefaults(t *testing.T) {
	assert.Equal(t, "manual_entry-AAAAAA-af2.fasta", FileName("AAAAAA", DefaultFileNameOptions()))
}

func TestFileNameMultibyte(t *testing.T) {
	name := ShortName("ÅBCDEFGH", 1)
	got := FileName(name, DefaultFileNameOptions())

	assert.Equal(t, "manual_entry-Å-af2.fasta", got)
	assert.True(t, utf8.ValidString(got))
}

func TestFileNameCustom(t *testing.T) {
	opts := FileNameOptions{Prefix: "run", Delim: "_", Suffix: "boltz", Extension: "fa"}
	assert.Equal(t, "run_MPGAFS_boltz.fa", FileName("MPGAFS", opts))
}
