// Package airport resolves an ICAO airport code to a reference
// latitude/longitude, used to seed internal/cpr.Reference for the
// --latlon CLI flag when no live position has been decoded yet.
package airport

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one airport's reference position.
type Entry struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Table maps uppercase ICAO code to Entry.
type Table map[string]Entry

// searchLocations mirrors the multi-path lookup convention used for other
// run-time YAML data files in this codebase's ancestry: try the working
// directory first, then package-installed locations.
var searchLocations = []string{
	"airports.yaml",
	"data/airports.yaml",
	"/usr/local/share/jet1090/airports.yaml",
	"/usr/share/jet1090/airports.yaml",
}

// Load reads an airport table from an explicit path, or, if path is empty,
// from the first of searchLocations that exists.
func Load(path string) (Table, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("airport: read %s: %w", path, err)
		}
	} else {
		for _, loc := range searchLocations {
			data, err = os.ReadFile(loc)
			if err == nil {
				break
			}
		}
		if data == nil {
			return Table{}, nil
		}
	}

	var raw map[string]Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("airport: parse: %w", err)
	}

	table := make(Table, len(raw))
	for code, entry := range raw {
		table[strings.ToUpper(code)] = entry
	}
	return table, nil
}

// Lookup finds an airport by ICAO code, case-insensitively.
func (t Table) Lookup(code string) (Entry, bool) {
	e, ok := t[strings.ToUpper(code)]
	return e, ok
}
