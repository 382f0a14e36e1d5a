package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

type stubSource struct {
	coord address.Coordinate
	err   error
}

func (s stubSource) Current(context.Context) (address.Coordinate, error) {
	return s.coord, s.err
}

type blockingSource struct{}

func (blockingSource) Current(ctx context.Context) (address.Coordinate, error) {
	<-ctx.Done()
	return address.Coordinate{}, ctx.Err()
}

func TestCurrentLocationReturnsFix(t *testing.T) {
	want := address.Coordinate{Latitude: 19.076, Longitude: 72.8777}
	got, err := CurrentLocation(context.Background(), stubSource{coord: want})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCurrentLocationDistinguishesCauses(t *testing.T) {
	for _, sentinel := range []error{ErrPermissionDenied, ErrUnavailable} {
		_, err := CurrentLocation(context.Background(), stubSource{err: sentinel})
		require.ErrorIs(t, err, sentinel)
	}
}

func TestCurrentLocationMapsDeadlineToTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := CurrentLocation(ctx, blockingSource{})
	require.ErrorIs(t, err, ErrLocationTimeout)
}

func TestLocateAddressKeepsFixOnGeocodeFailure(t *testing.T) {
	fix := address.Coordinate{Latitude: 1, Longitude: 2}
	client := NewClient(Config{}, nil, nil) // no API key: resolution fails

	_, coord, err := LocateAddress(context.Background(), stubSource{coord: fix}, client)
	require.Error(t, err)
	assert.Equal(t, fix, coord)
}
