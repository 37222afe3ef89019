package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"khata/internal/domain"
	"khata/internal/gst"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := gst.RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs struct tag validation and reports the first failure as
// a validation error.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Validationf("%s failed %q validation", toSnake(fe.Field()), fe.Tag())
	}
	return domain.Validationf("%v", err)
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
