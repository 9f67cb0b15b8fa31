package formstate

import (
	"errors"
	"fmt"
)

// ErrUnknownField indicates a field key that is not declared by the form's
// schema. Accessors fail fast with this sentinel instead of returning
// undefined state.
var ErrUnknownField = errors.New("formstate: unknown field")

func unknownFieldError(key string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, key)
}
