package handler

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to echo's Validator
// interface. Wire it with e.Validator = handler.NewValidator().
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
