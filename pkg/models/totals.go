package models

import "github.com/galvictor/assetfetch/internal/category"

// CategoryTotal accumulates the successes for one category during a run.
type CategoryTotal struct {
	Count int
	Bytes int64
}

// RunTotals is the accumulator for one full pass over the URL list. It is
// owned by the pipeline; nothing else writes to it.
type RunTotals struct {
	PerCategory map[category.Category]CategoryTotal
	Errors      int
	TotalURLs   int
}

func NewRunTotals(totalURLs int) *RunTotals {
	return &RunTotals{
		PerCategory: make(map[category.Category]CategoryTotal),
		TotalURLs:   totalURLs,
	}
}

// AddSuccess records one downloaded file for the category.
func (t *RunTotals) AddSuccess(c category.Category, bytes int64) {
	ct := t.PerCategory[c]
	ct.Count++
	ct.Bytes += bytes
	t.PerCategory[c] = ct
}

// AddError records one failed or unrecognized URL.
func (t *RunTotals) AddError() {
	t.Errors++
}

// SuccessCount returns the number of downloads completed across all categories.
func (t *RunTotals) SuccessCount() int {
	n := 0
	for _, ct := range t.PerCategory {
		n += ct.Count
	}
	return n
}

// TotalBytes returns the combined byte size of every downloaded file.
func (t *RunTotals) TotalBytes() int64 {
	var n int64
	for _, ct := range t.PerCategory {
		n += ct.Bytes
	}
	return n
}
