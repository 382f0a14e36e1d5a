package address

import (
	"slices"
	"strings"
)

// streetFallback is used when neither the components nor the formatted
// address yield anything usable.
const streetFallback = "GPS Location"

// Component is one typed address component from a geocoder result.
type Component struct {
	LongName string
	Types    []string
}

// Defaults fills city, state, and postal code when the geocoder resolves
// none. Callers must not treat defaulted values as confirmation of
// location; they exist so a delivery form is never submitted half-empty.
type Defaults struct {
	City    string
	State   string
	ZipCode string
}

// Extract applies the component-extraction policy to a geocoder result:
//
//   - landmark comes from a premise- or establishment-typed component
//   - street from route
//   - area from the finest sublocality level available
//   - city from locality, state from administrative_area_level_1,
//     postal code from postal_code
//
// The composed street field concatenates landmark, route, and area with
// ", ", skipping empty parts. When nothing resolved, it falls back to the
// first comma-delimited segment of formatted, then to a fixed placeholder.
func Extract(components []Component, formatted string, defaults Defaults) Fields {
	var landmark, route, area, sublocality, city, state, zipCode string

	for _, c := range components {
		has := func(t string) bool { return slices.Contains(c.Types, t) }

		if has("premise") || has("establishment") {
			landmark = c.LongName
		}
		if has("route") {
			route = c.LongName
		}
		if has("sublocality_level_2") {
			area = c.LongName
		}
		if has("sublocality_level_1") {
			sublocality = c.LongName
		}
		if has("locality") {
			city = c.LongName
		}
		if has("administrative_area_level_1") {
			state = c.LongName
		}
		if has("postal_code") {
			zipCode = c.LongName
		}
	}

	street := joinParts(landmark, route, area)
	if street == "" {
		street = firstSegment(formatted)
	}
	if street == "" {
		street = streetFallback
	}

	resolvedArea := sublocality
	if resolvedArea == "" {
		resolvedArea = area
	}

	return Fields{
		Street:   street,
		Landmark: landmark,
		Area:     resolvedArea,
		City:     orDefault(city, defaults.City),
		State:    orDefault(state, defaults.State),
		ZipCode:  orDefault(zipCode, defaults.ZipCode),
	}
}

func joinParts(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p)
	}
	return b.String()
}

func firstSegment(formatted string) string {
	segment, _, _ := strings.Cut(formatted, ",")
	return strings.TrimSpace(segment)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
