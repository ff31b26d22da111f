package config

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("home_path", validateHomePath)
}

// validateHomePath accepts absolute paths and paths below ~.
func validateHomePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "~" || strings.HasPrefix(path, "~/") {
		return true
	}
	return filepath.IsAbs(path)
}
