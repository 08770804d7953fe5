package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var moveAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// IsValidAddress reports whether an account address is a well formed
// 0x-prefixed hex string of at most 32 bytes.
func IsValidAddress(address string) bool {
	return moveAddressRe.MatchString(address)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterValidation("moveaddress", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
