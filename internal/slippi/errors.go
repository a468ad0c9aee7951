package slippi

import "fmt"

// FormatError reports a replay that does not follow the Slippi file format.
type FormatError struct {
	// Offset is the byte offset in the container or event stream at which
	// the problem was found.
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("slippi: %s (offset %d)", e.Msg, e.Offset)
}
