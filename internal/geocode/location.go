package geocode

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

// FixTimeout bounds how long a device position fix may take.
const FixTimeout = 30 * time.Second

// Location failure taxonomy. Each cause gets its own user-facing message,
// so the sentinel values must stay distinguishable.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("location unavailable")
	ErrLocationTimeout  = errors.New("location request timed out")
)

// LocationSource provides the device's current position. Implementations
// must return a fresh fix, never a cached one, and should map their native
// failure modes onto the package sentinel errors.
type LocationSource interface {
	Current(ctx context.Context) (address.Coordinate, error)
}

// CurrentLocation queries src for a fresh fix with FixTimeout applied.
// Deadline expiry surfaces as ErrLocationTimeout.
func CurrentLocation(ctx context.Context, src LocationSource) (address.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, FixTimeout)
	defer cancel()

	coord, err := src.Current(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return address.Coordinate{}, ErrLocationTimeout
		}
		return address.Coordinate{}, err
	}
	return coord, nil
}

// LocateAddress performs the full "use my current location" flow: obtain a
// fix, reverse-geocode it, and return both. The coordinate is returned even
// when reverse geocoding fails, so callers can keep the fix and ask the
// user to complete the address manually.
func LocateAddress(ctx context.Context, src LocationSource, c *Client) (address.Fields, address.Coordinate, error) {
	coord, err := CurrentLocation(ctx, src)
	if err != nil {
		return address.Fields{}, address.Coordinate{}, err
	}

	fields, err := c.Reverse(ctx, coord)
	if err != nil {
		return address.Fields{}, coord, errors.Wrap(err, "reverse geocode")
	}
	return fields, coord, nil
}
