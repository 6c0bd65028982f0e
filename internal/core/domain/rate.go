package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies how a ledger entry was obtained.
type RateSource string

const (
	SourceScrape   RateSource = "SCRAPE"
	SourceManual   RateSource = "MANUAL"
	SourceFallback RateSource = "FALLBACK"
)

// IsValid reports whether the source is one of the known provenance tags.
func (s RateSource) IsValid() bool {
	switch s {
	case SourceScrape, SourceManual, SourceFallback:
		return true
	}
	return false
}

// ExchangeRate is one entry in the daily rate ledger: bolívares (VES) per one
// US dollar, effective for a single calendar date. Entries are immutable once
// written; the ledger holds at most one entry per date.
type ExchangeRate struct {
	RateID   string          `json:"rateID"`
	RateDate time.Time       `json:"rateDate"` // day granularity, UTC midnight
	Rate     decimal.Decimal `json:"rate"`
	Source   RateSource      `json:"source"`
	AuditFields
}

// RateStats summarises the ledger over a trailing window.
type RateStats struct {
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Avg   decimal.Decimal `json:"avg"`
	Count int             `json:"count"`
}

// RateDay truncates t to day granularity in UTC. All ledger lookups and
// inserts key on this value so "today" means the same thing everywhere.
func RateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
