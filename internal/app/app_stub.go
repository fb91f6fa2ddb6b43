//go:build !ebiten

package app

import (
	"errors"

	"sandsim/internal/core"
)

// ErrNoGUI is returned by Run when the binary was built without the ebiten tag.
var ErrNoGUI = errors.New("the GUI requires building with the 'ebiten' tag (go run -tags ebiten .)")

// Run reports that the GUI build tag is missing.
func Run(core.Sim, *Config) error {
	return ErrNoGUI
}
