package mapping

import (
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/cocoluventas/sales_backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:      d.RateID,
		RateDate:    domain.RateDay(d.RateDate),
		Rate:        d.Rate,
		Source:      string(d.Source),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		RateID:      m.RateID,
		RateDate:    domain.RateDay(m.RateDate),
		Rate:        m.Rate,
		Source:      domain.RateSource(m.Source),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
