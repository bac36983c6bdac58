package openmeteo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCity is returned by Lookup for names missing from the table
var ErrUnknownCity = errors.New("city not found")

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Cities maps lower-case city names to coordinates. It is built once and never mutated.
type Cities struct {
	coords map[string]Coordinates
	names  []string
}

type cityEntry struct {
	name string
	at   Coordinates
}

// DefaultCities returns the cities the weather lessons know about
func DefaultCities() *Cities {
	return newCities([]cityEntry{
		{"delhi", Coordinates{28.6139, 77.2090}},
		{"mumbai", Coordinates{19.0760, 72.8777}},
		{"bangalore", Coordinates{12.9716, 77.5946}},
		{"chennai", Coordinates{13.0827, 80.2707}},
		{"kolkata", Coordinates{22.5726, 88.3639}},
		{"hyderabad", Coordinates{17.3850, 78.4867}},
		{"new york", Coordinates{40.7128, -74.0060}},
		{"london", Coordinates{51.5074, -0.1278}},
		{"tokyo", Coordinates{35.6762, 139.6503}},
		{"sydney", Coordinates{-33.8688, 151.2093}},
		{"paris", Coordinates{48.8566, 2.3522}},
		{"berlin", Coordinates{52.5200, 13.4050}},
	})
}

func newCities(entries []cityEntry) *Cities {
	c := &Cities{coords: make(map[string]Coordinates, len(entries))}
	for _, e := range entries {
		c.coords[e.name] = e.at
		c.names = append(c.names, e.name)
	}
	return c
}

// Lookup finds a city by name, ignoring case and surrounding whitespace.
// The error for an unknown name lists every valid one.
func (c *Cities) Lookup(name string) (Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if at, ok := c.coords[key]; ok {
		return at, nil
	}
	return Coordinates{}, fmt.Errorf("%w: %q, available cities: %s",
		ErrUnknownCity, strings.TrimSpace(name), strings.Join(c.names, ", "))
}

// Names lists the known cities in display order
func (c *Cities) Names() []string {
	return append([]string(nil), c.names...)
}
