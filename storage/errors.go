package storage

import "errors"

// ErrDuplicate is returned when a unique code or order number already exists.
var ErrDuplicate = errors.New("duplicate record")
