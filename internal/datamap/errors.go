package datamap

import (
	"fmt"
	"strings"
)

// Location identifies the entity a record was mapped from. Fields that do
// not apply are -1.
type Location struct {
	Game  int
	Port  int
	Frame int
}

// At returns the location of a game-level entity.
func At(game int) Location { return Location{Game: game, Port: -1, Frame: -1} }

// WithPort returns l narrowed to a port.
func (l Location) WithPort(port int) Location {
	l.Port = port
	return l
}

// WithFrame returns l narrowed to a frame.
func (l Location) WithFrame(frame int) Location {
	l.Frame = frame
	return l
}

func (l Location) String() string {
	parts := []string{fmt.Sprintf("game %d", l.Game)}
	if l.Port >= 0 {
		parts = append(parts, fmt.Sprintf("port %d", l.Port))
	}
	if l.Frame >= 0 {
		parts = append(parts, fmt.Sprintf("frame %d", l.Frame))
	}
	return strings.Join(parts, ", ")
}

// ExtractionFieldError reports an extractor that failed against its source
// entity.
type ExtractionFieldError struct {
	Table    string
	Field    string
	Location Location
	Err      error
}

func (e *ExtractionFieldError) Error() string {
	return fmt.Sprintf("extracting %s.%s (%s): %v", e.Table, e.Field, e.Location, e.Err)
}

func (e *ExtractionFieldError) Unwrap() error { return e.Err }
