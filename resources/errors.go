package resources

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind   = errors.New("resources: unknown asset type")
	ErrNoName        = errors.New("resources: source has no name")
	ErrPathCount     = errors.New("resources: wrong number of paths")
	ErrDuplicateName = errors.New("resources: duplicate source name")
	ErrLoadTimeout   = errors.New("resources: load timed out")
	ErrNoLoader      = errors.New("resources: no loader for kind")
)

// LoadError reports a single source that failed to load.
type LoadError struct {
	Source Source
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("resources: load %s %q: %v", e.Source.Kind, e.Source.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
