package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

// Config holds the complete client configuration, loadable from
// environment variables (STOREFRONT_ prefix) or YAML config files.
type Config struct {
	APIBaseURL  string        `default:"http://localhost:5000" usage:"Storefront API base URL"`
	StatePath   string        `default:"storefront.db" usage:"Path of the local state database"`
	HTTPTimeout time.Duration `default:"30s" usage:"Timeout for storefront API calls"`
	// Location is an optional fixed device coordinate ("lat,lng") for
	// hosts without positioning hardware. Empty means unavailable.
	Location  string `usage:"Fixed device coordinate as lat,lng"`
	Geocoding GeocodingConfig
}

// GeocodingConfig controls the address resolver.
type GeocodingConfig struct {
	BaseURL string `default:"https://maps.googleapis.com" usage:"Geocoding service base URL"`
	APIKey  string `usage:"Geocoding API key (STOREFRONT_GEOCODING_API_KEY)"`
	// Fallback values used when the geocoder resolves no city/state/zip.
	DefaultCity    string `default:"Mumbai" usage:"Fallback city"`
	DefaultState   string `default:"Maharashtra" usage:"Fallback state"`
	DefaultZipCode string `default:"400001" usage:"Fallback postal code"`
}

// Defaults returns the configured address fallbacks.
func (g GeocodingConfig) Defaults() address.Defaults {
	return address.Defaults{
		City:    g.DefaultCity,
		State:   g.DefaultState,
		ZipCode: g.DefaultZipCode,
	}
}

// LoadConfig loads configuration from environment variables and YAML
// config files. Command-line flags are left to the subcommand parsers.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		SkipFlags: true,
		Files:     []string{"config.yaml", os.ExpandEnv("$HOME/.config/storefront/config.yaml")},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

// ParseCoordinate parses a "lat,lng" pair.
func ParseCoordinate(s string) (address.Coordinate, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return address.Coordinate{}, errors.Errorf("coordinate %q: want lat,lng", s)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return address.Coordinate{}, errors.Wrap(err, "parse latitude")
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return address.Coordinate{}, errors.Wrap(err, "parse longitude")
	}
	return address.Coordinate{Latitude: latitude, Longitude: longitude}, nil
}
