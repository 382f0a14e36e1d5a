package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func TestApplyPreservesUnsetFields(t *testing.T) {
	prev := ShippingAddress{
		Name:   "Asha",
		Phone:  "9876543210",
		Street: "A-101, Maple Apartments",
		City:   "Navi Mumbai",
	}

	got := prev.Apply(Patch{Street: str("B-204, Palm Residency"), ZipCode: str("410206")})

	assert.Equal(t, "B-204, Palm Residency", got.Street)
	assert.Equal(t, "410206", got.ZipCode)
	// Everything not in the patch is untouched.
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "9876543210", got.Phone)
	assert.Equal(t, "Navi Mumbai", got.City)
	// The original value is not mutated.
	assert.Equal(t, "A-101, Maple Apartments", prev.Street)
}

func TestApplyLocationCopies(t *testing.T) {
	loc := Coordinate{Latitude: 19.076, Longitude: 72.8777}
	got := ShippingAddress{}.Apply(Patch{Location: &loc})

	assert.NotNil(t, got.Location)
	assert.NotSame(t, &loc, got.Location)
	assert.Equal(t, loc, *got.Location)
}

func TestFieldsPatchCoversAddressOnly(t *testing.T) {
	prev := ShippingAddress{Name: "Asha", Phone: "9876543210", Street: "manual entry"}
	fields := Fields{
		Street: "MG Road, Sector 5",
		Area:   "Sector 5",
		City:   "Navi Mumbai",
		State:  "Maharashtra", ZipCode: "410206",
	}

	got := prev.Apply(fields.Patch())

	assert.Equal(t, "MG Road, Sector 5", got.Street)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "9876543210", got.Phone)
}
