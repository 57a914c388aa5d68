package ports

import "errors"

// ErrNotFound is returned by journal updates that target a record that
// does not exist.
var ErrNotFound = errors.New("not found")
