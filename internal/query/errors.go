package query

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Level names a level of the hierarchy that a lookup can miss at.
type Level string

const (
	LevelState       Level = "state"
	LevelDistrict    Level = "district"
	LevelSubDistrict Level = "sub-district"
)

// NotFoundError reports that the requested name does not exist at Level.
type NotFoundError struct {
	Level Level
	Name  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("query: %s not found: %q", e.Level, e.Name)
}

// ErrInvalidQuery is returned by Search for an empty or whitespace-only query.
var ErrInvalidQuery = eris.New("query: search query is required")

func notFound(level Level, name string) error {
	return &NotFoundError{Level: level, Name: name}
}
