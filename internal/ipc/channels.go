package ipc

import "scribe/pkg/types"

// Requests served by the host.
const (
	OpenFileDialog     = "open-file-dialog"
	SaveFile           = "save-file"
	SaveFileDialog     = "save-file-dialog"
	ReloadFile         = "reload-file"
	ReloadFileDialog   = "reload-file-dialog"
	LoadFormatMappings = "load-format-mappings"
	SaveFormatMappings = "save-format-mappings"
	LoadPreferences    = "load-preferences"
	SavePreference     = "save-preference"
	OpenPath           = "open-path"
)

// Notifications sent by the view.
const (
	AddRecentFile = "add-recent-file"
	ConfirmClose  = "confirm-close"
	ViewReady     = "view-ready"
)

// Events sent by the host.
const (
	FileOpened  = "file-opened"
	FileChanged = "file-changed"
	MenuNew     = "menu-new"
	MenuSave    = "menu-save"
	MenuSaveAs  = "menu-save-as"
	MenuReload  = "menu-reload"
	AppClosing  = "app-closing"
)

// SaveFileRequest is the payload of save-file.
type SaveFileRequest struct {
	Path     string         `json:"filePath"`
	Content  string         `json:"content"`
	Encoding types.Encoding `json:"encoding"`
}

// SaveFileDialogRequest is the payload of save-file-dialog.
type SaveFileDialogRequest struct {
	Content       string         `json:"content"`
	Encoding      types.Encoding `json:"encoding"`
	SuggestedName string         `json:"suggestedName,omitempty"`
}

// PathRequest carries a single file path. It is the payload of reload-file,
// add-recent-file, file-changed and open-path.
type PathRequest struct {
	Path string `json:"filePath"`
}

// SavePreferenceRequest is the payload of save-preference.
type SavePreferenceRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
