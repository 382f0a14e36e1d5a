package geocode

import (
	"context"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

// FixedSource is a LocationSource that always reports one coordinate.
// It stands in for a positioning device on hosts that have none.
type FixedSource struct {
	Coordinate address.Coordinate
}

func (s FixedSource) Current(context.Context) (address.Coordinate, error) {
	return s.Coordinate, nil
}

// NoSource is a LocationSource for hosts with no position available at
// all; every query fails with ErrUnavailable.
type NoSource struct{}

func (NoSource) Current(context.Context) (address.Coordinate, error) {
	return address.Coordinate{}, ErrUnavailable
}
