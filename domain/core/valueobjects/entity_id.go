package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// EntityID is a value object representing a store assigned document identifier.
// Value objects are immutable and have no identity beyond their value
type EntityID struct {
	value string
}

// ErrMalformedID is returned when a string does not parse as an identifier
var ErrMalformedID = errors.New("entity ID must be a valid UUID")

// NewEntityID creates a new random EntityID
func NewEntityID() EntityID {
	return EntityID{value: uuid.New().String()}
}

// NewEntityIDFromString parses id and returns it in canonical form: lowercase
// and hyphenated. Braced, urn:uuid: and undashed spellings of the same UUID
// yield the same EntityID.
func NewEntityIDFromString(id string) (EntityID, error) {
	if id == "" {
		return EntityID{}, errors.New("entity ID cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return EntityID{}, ErrMalformedID
	}
	return EntityID{value: parsed.String()}, nil
}

// String returns the string representation of the EntityID
func (id EntityID) String() string {
	return id.value
}
