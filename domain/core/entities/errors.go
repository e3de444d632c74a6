package entities

import "errors"

// ErrIncompleteRecord is returned when a record without store timestamps is
// asked for its external representation.
var ErrIncompleteRecord = errors.New("record is missing created or edited timestamp")
