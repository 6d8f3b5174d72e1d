package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloprep-go/pkg/phyloprep"
)

// DecimalDateRequest is a possibly partial calendar date. Missing
// components are empty or "NA".
type DecimalDateRequest struct {
	Year     string `json:"year"`
	Month    string `json:"month"`
	Day      string `json:"day"`
	Calendar bool   `json:"calendar"`
	// Digits defaults to six decimals when absent.
	Digits *int `json:"digits,omitempty"`
}

// DecimalDateResponse holds the converted date as text.
type DecimalDateResponse struct {
	Date string `json:"date"`
}

// DecimalDateHandler converts calendar dates to decimal years.
func DecimalDateHandler(w http.ResponseWriter, r *http.Request) {
	var req DecimalDateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Year == "" {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}

	digits := -1
	if req.Digits != nil {
		digits = *req.Digits
	}

	s, err := phyloprep.DateString(req.Year, req.Month, req.Day, req.Calendar, digits)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, DecimalDateResponse{Date: s})
}

// TipDateRequest holds an ISO date, possibly without day or month.
type TipDateRequest struct {
	Date string `json:"date"`
}

// TipDateResponse represents a tip date and its bounds.
type TipDateResponse struct {
	Date      float64 `json:"date"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Precision string  `json:"precision"`
	Uncertain bool    `json:"uncertain"`
}

func newTipDateResponse(d phyloprep.TipDate) TipDateResponse {
	return TipDateResponse{
		Date:      d.Date,
		Lower:     d.Lower,
		Upper:     d.Upper,
		Precision: d.Precision.String(),
		Uncertain: d.Uncertain(),
	}
}

// TipDateHandler handles tip date parsing requests.
func TipDateHandler(w http.ResponseWriter, r *http.Request) {
	var req TipDateRequest
	if !decode(w, r, &req) {
		return
	}

	d, err := phyloprep.ParseTipDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, newTipDateResponse(d))
}

// DateRangeRequest holds a range such as "2014/06/01-2015/01/01".
type DateRangeRequest struct {
	Range string `json:"range"`
}

// DateRangeResponse is the half-open interval [Lower, Upper).
type DateRangeResponse struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// DateRangeHandler handles date range parsing requests.
func DateRangeHandler(w http.ResponseWriter, r *http.Request) {
	var req DateRangeRequest
	if !decode(w, r, &req) {
		return
	}

	rng, err := phyloprep.ParseDateRange(req.Range)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, DateRangeResponse{Lower: rng.Lower, Upper: rng.Upper})
}
