package params

import "fmt"

// MissingParameterError - параметр отсутствует в наборе.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "unknown parameter: " + e.Name
}

// TypeMismatchError - параметр хранится с другим типом.
type TypeMismatchError struct {
	Name   string
	Stored Kind
	Wanted Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("unknown %s parameter: %s (stored as %s)", e.Wanted, e.Name, e.Stored)
}
