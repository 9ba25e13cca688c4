package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate         *validator.Validate
	airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("airport_code", func(fl validator.FieldLevel) bool {
		return airportCodeRegex.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}
