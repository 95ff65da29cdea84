package common

// Mode is what the keyboard currently drives.
type Mode int

const (
	// Editing sends keys to the text area.
	Editing Mode = iota
	// Prompting reads a path in the input line.
	Prompting
	// Confirming waits for y or n on an unsaved-changes question.
	Confirming
	// PickingRecent lists the recent files.
	PickingRecent
)

func (m Mode) String() string {
	switch m {
	case Prompting:
		return "prompt"
	case Confirming:
		return "confirm"
	case PickingRecent:
		return "recent"
	default:
		return "edit"
	}
}
