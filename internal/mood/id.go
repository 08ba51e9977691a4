package mood

import (
	"github.com/google/uuid"
)

// NewID returns a UUIDv7: a millisecond timestamp prefix followed by random
// bits, so ids sort roughly by creation time and do not collide in practice.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
