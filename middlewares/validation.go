package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterValidators adds the custom binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("objectid", validateObjectID)
}

// validateObjectID accepts 24 character hex MongoDB ids. Empty strings pass;
// the services treat them as absent.
func validateObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || primitive.IsValidObjectID(s)
}
