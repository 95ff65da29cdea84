package types

// SaveResult is the reply to a save-file request.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SaveAsResult is the reply to a save-file-dialog request. Canceled is set
// when the user dismissed the dialog; it is not a failure.
type SaveAsResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath,omitempty"`
	Error    string `json:"error,omitempty"`
	Canceled bool   `json:"canceled,omitempty"`
}

// MutationResult is the reply to requests that persist a document.
type MutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Failed builds a failed SaveResult from err.
func Failed(err error) SaveResult {
	return SaveResult{Success: false, Error: err.Error()}
}
