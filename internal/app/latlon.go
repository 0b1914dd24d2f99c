package app

import (
	"fmt"
	"strconv"
	"strings"

	"jet1090/internal/airport"
	"jet1090/internal/cpr"
)

// resolveLatLon interprets the --latlon flag value as either a "lat,lon"
// pair or an ICAO airport code, seeding a CPR reference position for local
// decoding before any aircraft has been seen. An empty value returns a
// zero, unset Reference (local decode proceeds without one until the
// first global decode succeeds).
func resolveLatLon(value string, airports airport.Table) (*cpr.Reference, error) {
	if value == "" {
		return &cpr.Reference{}, nil
	}

	if lat, lon, ok := parseLatLonPair(value); ok {
		return &cpr.Reference{Lat: lat, Lon: lon, Have: true}, nil
	}

	entry, ok := airports.Lookup(value)
	if !ok {
		return nil, fmt.Errorf("app: --latlon %q is neither a lat,lon pair nor a known airport code", value)
	}
	return &cpr.Reference{Lat: entry.Lat, Lon: entry.Lon, Have: true}, nil
}

func parseLatLonPair(value string) (lat, lon float64, ok bool) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
