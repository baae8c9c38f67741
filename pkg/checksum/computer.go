package checksum

import (
	"context"
)

// Computer obtains the checksum of an object from an authoritative
// source. The checksum returned may be PendingSentinel.
type Computer interface {
	Compute(ctx context.Context, name string) (Checksum, error)
}
