package dto

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding rules on gin's validator.
// Call once at startup before the router handles traffic.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return domain.AccountCode(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("reftype", func(fl validator.FieldLevel) bool {
		return domain.RefType(fl.Field().String()).Valid()
	})
}
