package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Same separator on both sides: 0812345678, 081-234-5678, (081) 234 5678.
var telephonePattern = regexp.MustCompile(`^\(?[0-9]{3}\)?(?:[0-9]{3}[0-9]{4}|-[0-9]{3}-[0-9]{4}|\.[0-9]{3}\.[0-9]{4}| ?[0-9]{3} [0-9]{4})$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	registerCustom(validate)
}

// RegisterGin installs the custom tags on gin's binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerCustom(v)
}

func registerCustom(v *validator.Validate) error {
	return v.RegisterValidation("telephone", func(fl validator.FieldLevel) bool {
		return IsTelephone(fl.Field().String())
	})
}

func IsTelephone(s string) bool {
	return telephonePattern.MatchString(s)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
