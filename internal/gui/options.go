package gui

import (
	"scribe/internal/config"
	"scribe/internal/instance"
	"scribe/internal/shell"
)

// Options configures a GUI session.
type Options struct {
	Config *config.Config
	Stores shell.Stores
	// Launch is opened once the editor is ready.
	Launch string
	// Instance, when set, delivers files forwarded by later launches.
	Instance *instance.Instance
}
