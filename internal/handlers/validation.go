package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidations installs the accountcode rule on gin's binding
// validator. Chart account codes are 3 to 6 digit strings.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) < 3 || len(code) > 6 {
			return false
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
