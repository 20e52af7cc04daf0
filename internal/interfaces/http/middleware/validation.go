package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/schoolkart/backend/internal/infrastructure/gst"
)

// SetupValidator configures gin's validator with custom tags. Field names
// in validation errors follow the json tag, and the gstin tag validates
// Indian GST registration numbers.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	return v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return gst.ValidateGSTIN(fl.Field().String())
	})
}
