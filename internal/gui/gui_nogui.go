//go:build nogui
// +build nogui

package gui

import (
	"context"

	"scribe/internal/errors"
)

// ErrUnavailable is returned by Run in builds without the desktop front-end.
var ErrUnavailable = errors.New("GUI not available in this build, use `scribe tui`")

// Run is a stub for builds with the GUI disabled.
func Run(_ context.Context, _ Options) error {
	return ErrUnavailable
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
