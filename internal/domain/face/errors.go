package face

import "errors"

var (
	ErrNoTemplateRegistered = errors.New("no face template registered for employee")
	ErrInvalidEmbedding     = errors.New("face embedding must contain 128 values")
	ErrFaceMismatch         = errors.New("face does not match the registered template")
)
