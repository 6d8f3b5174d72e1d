package phyloprep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/phyloprep-go/internal/msa"
)

const testFASTA = ">EBOV|S1|2014-05-26\nACGT\n>EBOV|S2|2014-06\nAC-N\n"

func TestDates(t *testing.T) {
	s, err := DateString("2015", "12", "31", false, 3)
	require.NoError(t, err)
	assert.Equal(t, "2015.997", s)

	d, err := ParseTipDate("2014")
	require.NoError(t, err)
	assert.Equal(t, Year, d.Precision)
	assert.True(t, d.Uncertain())

	r, err := ParseDateRange("2014/01/01-2015/01/01")
	require.NoError(t, err)
	assert.Equal(t, 2014.0, r.Lower)
	assert.Equal(t, 2015.0, r.Upper)
}

func TestAlignment(t *testing.T) {
	aln, err := ParseAlignmentString(testFASTA)
	require.NoError(t, err)
	require.Equal(t, 2, aln.Len())

	lengths := Lengths(aln, "|")
	assert.Equal(t, "S1", lengths[0].Key)
	assert.Equal(t, 2, lengths[1].Ungapped)

	sum, err := Summary(aln)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)

	h, err := Histogram(aln)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Width())
	assert.Len(t, Alphabet, len(h.Counts[0]))

	tips, err := Tips(aln)
	require.NoError(t, err)
	oldest, newest := Extremes(tips)
	assert.Equal(t, []string{"EBOV|S1|2014-05-26"}, oldest)
	assert.Equal(t, []string{"EBOV|S2|2014-06"}, newest)
}

func TestParseAlignmentStringEmpty(t *testing.T) {
	_, err := ParseAlignmentString("")
	var empty *msa.EmptyAlignmentError
	assert.True(t, errors.As(err, &empty))
}

func TestReadWriteAlignment(t *testing.T) {
	aln, err := ParseAlignment(strings.NewReader(testFASTA))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.fas")
	require.NoError(t, WriteAlignment(path, aln.Records[:1]))

	back, err := ReadAlignment(path)
	require.NoError(t, err)
	require.Equal(t, 1, back.Len())
	assert.Equal(t, aln.Records[0].Seq, back.Records[0].Seq)
}

func TestHistograms(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "aln.fas")
	require.NoError(t, os.WriteFile(in, []byte(testFASTA), 0o644))

	outputs, err := Histograms(context.Background(), HistJob{Inputs: []string{in}, OutDir: dir})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.FileExists(t, outputs[0].Path)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "1.0.0", Version())
	assert.Contains(t, Info(), "phyloprep v1.0.0")
}
