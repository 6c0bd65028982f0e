package dto

import (
	"fmt"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers domain-specific binding validations
// with gin's validator engine. Call once at startup before serving.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("ratesource", func(fl validator.FieldLevel) bool {
		return domain.RateSource(fl.Field().String()).IsValid()
	})
}
