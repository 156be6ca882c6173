package history

import "errors"

// ErrNotFound is returned when no puzzle exists for the requested date.
var ErrNotFound = errors.New("no puzzle for date")
