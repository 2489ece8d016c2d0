package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador de DTOs (los tags `validate`
// viven en internal/application/dto).
var validate = validator.New()
