package handler

import (
	"github.com/gerenciador/painel/internal/core/screen"
)

// echoValidator lets Echo call c.Validate(req) with the same rules and
// messages the screens use.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures are *screen.FormError.
func (ev *echoValidator) Validate(i any) error {
	return screen.Validate(i)
}
