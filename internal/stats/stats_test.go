package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/phyloprep-go/internal/msa"
)

func TestFromRecord(t *testing.T) {
	r := &msa.Record{ID: "EBOV|S1|KR001", Seq: "AATT-GGCC-NNa"}

	stats := FromRecord(r, "|")

	assert.Equal(t, "S1", stats.Key)
	assert.Equal(t, 13, stats.Length)
	assert.Equal(t, 9, stats.Ungapped)
	assert.Equal(t, 2, stats.Gaps)
	assert.Equal(t, 2, stats.Ambiguous)

	// GC = 4/9 of the unambiguous bases
	assert.InDelta(t, 4.0/9.0, stats.GCContent, 0.0001)
}

func TestFromRecordAllGaps(t *testing.T) {
	stats := FromRecord(&msa.Record{ID: "x", Seq: "----"}, "|")

	assert.Equal(t, 0, stats.Ungapped)
	assert.Equal(t, 0.0, stats.GCContent)
}

func TestFromRecords(t *testing.T) {
	records := []*msa.Record{
		{ID: "a", Seq: "ATGC----"}, // 4
		{ID: "b", Seq: "ATGCATGC"}, // 8
		{ID: "c", Seq: "GGCCNNNN"}, // 4
	}

	stats, err := FromRecords(records)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 16, stats.TotalBases)
	assert.Equal(t, 4, stats.MinUngapped)
	assert.Equal(t, 8, stats.MaxUngapped)
	assert.InDelta(t, 16.0/3.0, stats.MeanUngapped, 0.0001)
	assert.Equal(t, 4, stats.MedianUngapped) // sorted: 4, 4, 8; middle = 4
	assert.Equal(t, 4, stats.TotalAmbiguous)
}

func TestFromRecordsEmpty(t *testing.T) {
	_, err := FromRecords(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestN50Calculation(t *testing.T) {
	// Lengths 100, 80, 60, 40, 20: total 300, half 150, so N50 = 80.
	records := make([]*msa.Record, 0)
	for _, n := range []int{20, 100, 60, 80, 40} {
		records = append(records, &msa.Record{ID: "r", Seq: strings.Repeat("A", n)})
	}

	stats, err := FromRecords(records)
	require.NoError(t, err)

	assert.Equal(t, 80, stats.N50)
	assert.Equal(t, 60, stats.MedianUngapped)
}

func TestAtLeast(t *testing.T) {
	records := []*msa.Record{
		{Seq: "AC--"},
		{Seq: "ACGT"},
		{Seq: "NNNN"},
	}

	assert.Equal(t, 2, AtLeast(records, 2))
	assert.Equal(t, 1, AtLeast(records, 3))
	assert.Equal(t, 3, AtLeast(records, 0))
}

func BenchmarkFromRecords(b *testing.B) {
	records := make([]*msa.Record, 100)
	for i := range records {
		records[i] = &msa.Record{ID: "r", Seq: strings.Repeat("ACG-T", 200)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromRecords(records)
	}
}
