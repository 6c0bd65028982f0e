package dto

import (
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for ledger dates (day granularity).
const DateFormat = "2006-01-02"

// CreateRateRequest defines the structure for manually recording a rate.
type CreateRateRequest struct {
	Rate   decimal.Decimal `json:"rate" binding:"required"`
	Date   string          `json:"date" binding:"required,datetime=2006-01-02"`
	Source string          `json:"source" binding:"required,ratesource"`
}

// RateResponse defines the structure for API responses containing a ledger entry.
type RateResponse struct {
	RateID    string          `json:"rateID"`
	Date      string          `json:"date"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// RateHistoryResponse wraps a trailing window of ledger entries.
type RateHistoryResponse struct {
	Days  int            `json:"days"`
	Rates []RateResponse `json:"rates"`
}

// RateStatsResponse summarises the ledger over a trailing window.
type RateStatsResponse struct {
	Days  int             `json:"days"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Avg   decimal.Decimal `json:"avg"`
	Count int             `json:"count"`
}

// PersistOutcomeResponse reports what a write attempt did.
type PersistOutcomeResponse struct {
	Outcome string        `json:"outcome"`
	Rate    *RateResponse `json:"rate,omitempty"`
}

// ToRateResponse converts a domain.ExchangeRate to a RateResponse DTO.
func ToRateResponse(rate *domain.ExchangeRate) RateResponse {
	return RateResponse{
		RateID:    rate.RateID,
		Date:      rate.RateDate.Format(DateFormat),
		Rate:      rate.Rate,
		Source:    string(rate.Source),
		CreatedAt: rate.CreatedAt,
		CreatedBy: rate.CreatedBy,
	}
}

// ToRateHistoryResponse converts a slice of ledger entries.
func ToRateHistoryResponse(days int, rates []domain.ExchangeRate) RateHistoryResponse {
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return RateHistoryResponse{Days: days, Rates: responses}
}

// ToRateStatsResponse converts domain.RateStats.
func ToRateStatsResponse(days int, stats *domain.RateStats) RateStatsResponse {
	return RateStatsResponse{
		Days:  days,
		Min:   stats.Min,
		Max:   stats.Max,
		Avg:   stats.Avg,
		Count: stats.Count,
	}
}
