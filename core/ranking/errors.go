package ranking

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is matched by NotFoundError through errors.Is.
var ErrNotFound = errors.New("no charging stations found")

// NotFoundError reports that no station lies within the search radius.
type NotFoundError struct {
	RadiusKm float64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No charging stations found within %s km.", strconv.FormatFloat(e.RadiusKm, 'f', -1, 64))
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
