// Package stats summarises the records of an alignment.
//
// Lengths are ungapped: gaps ('-') and unknown bases ('N') do not count.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aria-lang/phyloprep-go/internal/msa"
)

// ErrEmpty is returned when there are no records to summarise.
var ErrEmpty = errors.New("record list cannot be empty")

// RecordStats represents statistics for a single aligned record.
type RecordStats struct {
	ID        string
	Key       string
	Length    int
	Ungapped  int
	Gaps      int
	Ambiguous int
	GCContent float64
}

// FromRecord calculates statistics for a record. Key is taken from the id
// using sep.
func FromRecord(r *msa.Record, sep string) *RecordStats {
	gc, acgt := 0, 0
	gaps := 0
	for i := 0; i < len(r.Seq); i++ {
		switch r.Seq[i] {
		case 'G', 'C', 'g', 'c':
			gc++
			acgt++
		case 'A', 'T', 'a', 't':
			acgt++
		case '-':
			gaps++
		}
	}

	gcContent := 0.0
	if acgt > 0 {
		gcContent = float64(gc) / float64(acgt)
	}

	return &RecordStats{
		ID:        r.ID,
		Key:       msa.Key(r.ID, sep),
		Length:    r.Len(),
		Ungapped:  r.Ungapped(),
		Gaps:      gaps,
		Ambiguous: r.CountAmbiguous(),
		GCContent: gcContent,
	}
}

func (s *RecordStats) String() string {
	return fmt.Sprintf("%s: length %d, ungapped %d, gaps %d, N %d, GC %.1f%%",
		s.ID, s.Length, s.Ungapped, s.Gaps, s.Ambiguous, s.GCContent*100)
}

// SetStats represents aggregated statistics for a set of records.
type SetStats struct {
	Count          int
	TotalBases     int
	MinUngapped    int
	MaxUngapped    int
	MeanUngapped   float64
	MedianUngapped int
	N50            int
	TotalAmbiguous int
}

// FromRecords calculates statistics for a collection of records.
func FromRecords(records []*msa.Record) (*SetStats, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	count := len(records)
	lengths := make([]int, count)
	totalBases := 0
	totalAmbiguous := 0

	for i, r := range records {
		lengths[i] = r.Ungapped()
		totalBases += lengths[i]
		totalAmbiguous += r.CountAmbiguous()
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	var median int
	if count%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	// N50: length at which half of all bases lie in records at least this long
	halfTotal := totalBases / 2
	runningSum := 0
	n50 := sorted[count-1]
	for i := count - 1; i >= 0; i-- {
		runningSum += sorted[i]
		if runningSum >= halfTotal {
			n50 = sorted[i]
			break
		}
	}

	return &SetStats{
		Count:          count,
		TotalBases:     totalBases,
		MinUngapped:    sorted[0],
		MaxUngapped:    sorted[count-1],
		MeanUngapped:   float64(totalBases) / float64(count),
		MedianUngapped: median,
		N50:            n50,
		TotalAmbiguous: totalAmbiguous,
	}, nil
}

// AtLeast counts records with an ungapped length of at least min.
func AtLeast(records []*msa.Record, min int) int {
	n := 0
	for _, r := range records {
		if r.Ungapped() >= min {
			n++
		}
	}
	return n
}

func (s *SetStats) String() string {
	return fmt.Sprintf(`SetStats {
  count: %d
  total bases: %d
  ungapped range: %d - %d
  mean ungapped: %.1f
  median ungapped: %d
  N50: %d
  ambiguous bases: %d
}`, s.Count, s.TotalBases, s.MinUngapped, s.MaxUngapped,
		s.MeanUngapped, s.MedianUngapped, s.N50, s.TotalAmbiguous)
}
