package middleware

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tgcs/experience-api/internal/modules/repo"
)

// RegisterValidators adds the custom binding tags to gin's validator:
//
//	sqlident  a bare SQL identifier (letters, digits, underscore)
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return repo.IsIdentifier(fl.Field().String())
	})
}
