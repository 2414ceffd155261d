//go:build tools

package tools

// Pins the migration CLI used against migrations/.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
