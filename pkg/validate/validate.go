package validate

import (
	"strings"

	"closetshare/internal/common/apperr"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates a request body against its validate tags and converts
// any violation into a BadValues error for the route boundary.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fe.Field())
		}
		return apperr.BadValues("Invalid value for field(s): %s", strings.Join(fields, ", "))
	}
	return apperr.BadValues("Invalid request body")
}
