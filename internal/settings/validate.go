package settings

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePackageManagerName rejects package manager names outside the
// set the workspace schema accepts.
func ValidatePackageManagerName(name string) error {
	if err := validate.Var(name, "required,oneof=npm cnpm yarn pnpm bun"); err != nil {
		return fmt.Errorf("unsupported package manager %q (supported: npm, cnpm, yarn, pnpm, bun)", name)
	}
	return nil
}
