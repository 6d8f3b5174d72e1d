package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloprep-go/pkg/phyloprep"
)

// AlignmentRequest holds a FASTA alignment.
type AlignmentRequest struct {
	FASTA string `json:"fasta"`
	// Sep separates the fields of sequence ids; defaults to "|".
	Sep string `json:"sep,omitempty"`
}

func (req AlignmentRequest) parse(w http.ResponseWriter) (*phyloprep.Alignment, bool) {
	aln, err := phyloprep.ParseAlignmentString(req.FASTA)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return aln, true
}

// HistogramRequest represents a column histogram request.
type HistogramRequest struct {
	AlignmentRequest
	Normalise bool `json:"normalise"`
}

// UnknownColumn lists the unrecognised characters of one column.
type UnknownColumn struct {
	Column  int            `json:"column"`
	Symbols map[string]int `json:"symbols"`
}

// HistogramResponse has one row per alignment column, with one entry per
// alphabet symbol.
type HistogramResponse struct {
	Alphabet string          `json:"alphabet"`
	Rows     [][]float64     `json:"rows"`
	Unknown  []UnknownColumn `json:"unknown"`
}

// HistogramHandler handles column histogram requests.
func HistogramHandler(w http.ResponseWriter, r *http.Request) {
	var req HistogramRequest
	if !decode(w, r, &req) {
		return
	}
	aln, ok := req.parse(w)
	if !ok {
		return
	}

	h, err := phyloprep.Histogram(aln)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := HistogramResponse{
		Alphabet: phyloprep.Alphabet,
		Rows:     make([][]float64, h.Width()),
		Unknown:  make([]UnknownColumn, 0),
	}
	if req.Normalise {
		resp.Rows = h.Proportions()
	} else {
		for i, counts := range h.Counts {
			row := make([]float64, len(counts))
			for j, c := range counts {
				row[j] = float64(c)
			}
			resp.Rows[i] = row
		}
	}

	for i, m := range h.Unknown {
		if len(m) == 0 {
			continue
		}
		col := UnknownColumn{Column: i, Symbols: make(map[string]int, len(m))}
		for c, n := range m {
			col.Symbols[string(c)] = n
		}
		resp.Unknown = append(resp.Unknown, col)
	}

	writeJSON(w, resp)
}

// LengthResponse holds the statistics of one record.
type LengthResponse struct {
	ID        string  `json:"id"`
	Key       string  `json:"key"`
	Length    int     `json:"length"`
	Ungapped  int     `json:"ungapped"`
	Gaps      int     `json:"gaps"`
	Ambiguous int     `json:"ambiguous"`
	GCContent float64 `json:"gc_content"`
}

// LengthsHandler handles per-record length requests.
func LengthsHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}
	aln, ok := req.parse(w)
	if !ok {
		return
	}

	sep := req.Sep
	if sep == "" {
		sep = "|"
	}

	stats := phyloprep.Lengths(aln, sep)
	resp := make([]LengthResponse, len(stats))
	for i, s := range stats {
		resp[i] = LengthResponse{
			ID:        s.ID,
			Key:       s.Key,
			Length:    s.Length,
			Ungapped:  s.Ungapped,
			Gaps:      s.Gaps,
			Ambiguous: s.Ambiguous,
			GCContent: s.GCContent,
		}
	}
	writeJSON(w, resp)
}

// SummaryResponse represents aggregated length statistics.
type SummaryResponse struct {
	Count          int     `json:"count"`
	TotalBases     int     `json:"total_bases"`
	MinUngapped    int     `json:"min_ungapped"`
	MaxUngapped    int     `json:"max_ungapped"`
	MeanUngapped   float64 `json:"mean_ungapped"`
	MedianUngapped int     `json:"median_ungapped"`
	N50            int     `json:"n50"`
	TotalAmbiguous int     `json:"total_ambiguous"`
}

// SummaryHandler handles alignment summary requests.
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}
	aln, ok := req.parse(w)
	if !ok {
		return
	}

	s, err := phyloprep.Summary(aln)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, SummaryResponse{
		Count:          s.Count,
		TotalBases:     s.TotalBases,
		MinUngapped:    s.MinUngapped,
		MaxUngapped:    s.MaxUngapped,
		MeanUngapped:   s.MeanUngapped,
		MedianUngapped: s.MedianUngapped,
		N50:            s.N50,
		TotalAmbiguous: s.TotalAmbiguous,
	})
}

// TipResponse is the date of one tip.
type TipResponse struct {
	ID string `json:"id"`
	TipDateResponse
}

// TipsResponse lists tip dates in alignment order.
type TipsResponse struct {
	Tips      []TipResponse `json:"tips"`
	Oldest    []string      `json:"oldest"`
	Newest    []string      `json:"newest"`
	Uncertain int           `json:"uncertain"`
}

// TipsHandler reads tip dates from the last field of each sequence id.
func TipsHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}
	aln, ok := req.parse(w)
	if !ok {
		return
	}

	tips, err := phyloprep.Tips(aln)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := TipsResponse{Tips: make([]TipResponse, len(tips))}
	for i, t := range tips {
		resp.Tips[i] = TipResponse{ID: t.ID, TipDateResponse: newTipDateResponse(t.Date)}
		if t.Date.Uncertain() {
			resp.Uncertain++
		}
	}
	resp.Oldest, resp.Newest = phyloprep.Extremes(tips)

	writeJSON(w, resp)
}
