package messages

// RefreshMsg tells the model that the host or view changed the shared
// editor state.
type RefreshMsg struct{}

// ErrorMsg carries the failure of a background action.
type ErrorMsg struct {
	Err error
}
