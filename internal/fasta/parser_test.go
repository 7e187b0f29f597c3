package fasta

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/samplesheet/internal/sample"
)

func TestParseSingleRecord(t *testing.T) {
	samples := Parse(strings.Split(">TEST\nMPGAFSQNSSKRRAVLPRSHR", "\n"), AllRecords)

	require.Len(t, samples, 1)
	assert.Equal(t, "TEST", samples[0].Name)
	assert.Equal(t, "MPGAFSQNSSKRRAVLPRSHR", samples[0].Sequence)
}

func TestParseFixedWidth(t *testing.T) {
	row := strings.Repeat("A", 80)
	samples := Parse([]string{">TEST", row, row}, AllRecords)

	require.Len(t, samples, 1)
	assert.Equal(t, "TEST", samples[0].Name)
	assert.Equal(t, strings.Repeat("A", 160), samples[0].Sequence)
}

func TestParseMultipleRecords(t *testing.T) {
	samples := Parse(strings.Split(">TEST\nMPGAFSQNSSKRRAVLPRSHR\n>DEMO\nAAAAAAAAAAAA", "\n"), AllRecords)

	assert.Equal(t, []sample.Sample{
		{Name: "TEST", Sequence: "MPGAFSQNSSKRRAVLPRSHR"},
		{Name: "DEMO", Sequence: "AAAAAAAAAAAA"},
	}, samples)
}

func TestParseMultipleFixedWidthRecords(t *testing.T) {
	samples := Parse(strings.Split(">TEST\nMPGAFSQNSS\nKRRAVLPRSHR\n>DEMO\nAAAAAA\nAAAAAA", "\n"), AllRecords)

	assert.Equal(t, []sample.Sample{
		{Name: "TEST", Sequence: "MPGAFSQNSSKRRAVLPRSHR"},
		{Name: "DEMO", Sequence: "AAAAAAAAAAAA"},
	}, samples)
}

func TestParseWrapInvariant(t *testing.T) {
	seq := "MPGAFSQNSSKRRAVLPRSHRACDEFGHIKLMNPQRSTVWY"
	unwrapped := Parse([]string{">X", seq}, AllRecords)

	for width := 1; width <= len(seq); width++ {
		lines := []string{">X"}
		for i := 0; i < len(seq); i += width {
			lines = append(lines, seq[i:min(i+width, len(seq))])
		}
		assert.Equal(t, unwrapped, Parse(lines, AllRecords), "width %d", width)
	}
}

func TestParseNoHeaders(t *testing.T) {
	samples := Parse([]string{"!!! CHECK IT OUT. I'M IN THE HOUSE LIKE CARPET !!!", ""}, AllRecords)
	assert.Empty(t, samples)

	assert.Empty(t, Parse(nil, AllRecords))
}

func TestParseDropsLinesBeforeFirstHeader(t *testing.T) {
	samples := Parse([]string{"junk", "MORE", ">A", "MK"}, AllRecords)

	assert.Equal(t, []sample.Sample{{Name: "A", Sequence: "MK"}}, samples)
}

func TestParseConsecutiveHeaders(t *testing.T) {
	samples := Parse([]string{">A", ">B", "MK", ">C"}, AllRecords)

	assert.Equal(t, []sample.Sample{
		{Name: "A"},
		{Name: "B", Sequence: "MK"},
		{Name: "C"},
	}, samples)
}

func TestParseHeaderWhitespace(t *testing.T) {
	samples := Parse([]string{"  > spaced name  ", "  MKV  ", "\tLLA\t", ">", "G"}, AllRecords)

	assert.Equal(t, []sample.Sample{
		{Name: "spaced name", Sequence: "MKVLLA"},
		{Name: "", Sequence: "G"},
	}, samples)
}

func TestParseBlankLinesInBody(t *testing.T) {
	samples := Parse([]string{">A", "MK", "", "   ", "VL", ""}, AllRecords)

	assert.Equal(t, []sample.Sample{{Name: "A", Sequence: "MKVL"}}, samples)
}

func TestParseFirstHeader(t *testing.T) {
	lines := strings.Split("junk\n>TEST\nMPGAFSQNSS\n>DEMO\nAAAAAA", "\n")
	samples := Parse(lines, FirstHeader)

	require.Len(t, samples, 1)
	assert.Equal(t, "TEST", samples[0].Name)
	assert.Empty(t, samples[0].Sequence)
}

func TestParseFirstHeaderNoHeaders(t *testing.T) {
	assert.Empty(t, Parse([]string{"MPGAFS"}, FirstHeader))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "all-records", AllRecords.String())
	assert.Equal(t, "first-header", FirstHeader.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestReadStampsPath(t *testing.T) {
	input := ">TEST\r\nMPGAFSQNSS\r\nKRRAVLPRSHR\r\n>DEMO\nAAAAAA\nAAAAAA\n"
	samples, err := Read(strings.NewReader(input), "in/demo.fasta", AllRecords)
	require.NoError(t, err)

	assert.Equal(t, []sample.Sample{
		{Name: "TEST", Path: "in/demo.fasta", Sequence: "MPGAFSQNSSKRRAVLPRSHR"},
		{Name: "DEMO", Path: "in/demo.fasta", Sequence: "AAAAAAAAAAAA"},
	}, samples)
}

func TestReadLongLine(t *testing.T) {
	seq := strings.Repeat("ACDEFGHIKL", 20000) // longer than the reader buffer
	samples, err := Read(strings.NewReader(">long\n"+seq+"\n"), "long.fa", AllRecords)
	require.NoError(t, err)

	require.Len(t, samples, 1)
	assert.Equal(t, seq, samples[0].Sequence)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadPropagatesError(t *testing.T) {
	_, err := Read(failingReader{}, "x.fa", AllRecords)
	assert.EqualError(t, err, "disk on fire")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sample.Sample{Name: "TEST", Path: ".tmp.fasta", Sequence: "AAAAAAA"})
	require.NoError(t, err)

	assert.Equal(t, ">TEST\nAAAAAAA", buf.String())
}

func TestWriteThenRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample.Sample{Name: "MPGAFS", Sequence: "MPGAFSQNSSKRRAVLPRSHR"}))

	samples, err := Read(&buf, "m.fasta", AllRecords)
	require.NoError(t, err)
	assert.Equal(t, []sample.Sample{{Name: "MPGAFS", Path: "m.fasta", Sequence: "MPGAFSQNSSKRRAVLPRSHR"}}, samples)
}

func BenchmarkParse(b *testing.B) {
	var lines []string
	for i := 0; i < 1000; i++ {
		lines = append(lines, ">seq")
		for j := 0; j < 5; j++ {
			lines = append(lines, strings.Repeat("ACDEFGHIKLMNPQRSTVWY", 3))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse(lines, AllRecords)
	}
}
