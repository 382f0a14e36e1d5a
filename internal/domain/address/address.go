// Package address holds the shipping address value type and the policy
// that turns geocoder output into address fields.
package address

// Coordinate is a WGS84 geographic position.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// ShippingAddress is the delivery destination captured during checkout.
// Location is set only when the address came from (or was confirmed
// against) a geographic fix; manually entered addresses leave it nil.
type ShippingAddress struct {
	Name     string
	Phone    string
	Street   string
	Landmark string
	Area     string
	City     string
	State    string
	ZipCode  string
	Location *Coordinate
}

// Patch is a partial update to a ShippingAddress. Nil fields are left
// untouched when applied, so a resolver result never clobbers in-progress
// manual edits of unrelated fields.
type Patch struct {
	Name     *string
	Phone    *string
	Street   *string
	Landmark *string
	Area     *string
	City     *string
	State    *string
	ZipCode  *string
	Location *Coordinate
}

// Apply returns a copy of a with every non-nil patch field replaced.
func (a ShippingAddress) Apply(p Patch) ShippingAddress {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.Landmark != nil {
		a.Landmark = *p.Landmark
	}
	if p.Area != nil {
		a.Area = *p.Area
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.State != nil {
		a.State = *p.State
	}
	if p.ZipCode != nil {
		a.ZipCode = *p.ZipCode
	}
	if p.Location != nil {
		loc := *p.Location
		a.Location = &loc
	}
	return a
}

// Fields is a resolved set of address fields produced by the extraction
// policy. Unlike Patch, every field is populated (possibly with configured
// defaults), so applying Fields replaces the address portion wholesale.
type Fields struct {
	Street   string
	Landmark string
	Area     string
	City     string
	State    string
	ZipCode  string
}

// Patch converts resolved fields into a Patch covering the address
// portion only. Name and phone are never touched by resolution.
func (f Fields) Patch() Patch {
	return Patch{
		Street:   &f.Street,
		Landmark: &f.Landmark,
		Area:     &f.Area,
		City:     &f.City,
		State:    &f.State,
		ZipCode:  &f.ZipCode,
	}
}
