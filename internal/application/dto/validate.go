package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate valida los tags `validate` de un DTO. Devuelve el error del
// validador tal cual; los handlers lo traducen a 400 VALIDATION.
func Validate(s any) error {
	return validate.Struct(s)
}
