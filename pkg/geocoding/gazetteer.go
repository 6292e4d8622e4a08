package geocoding

import (
	"context"
	"strings"

	"github.com/lintang-b-s/routefinder/pkg/geo"
)

// Gazetteer is an offline Provider backed by a fixed address table. Lookups ignore case and surrounding spaces.
type Gazetteer struct {
	entries map[string]geo.Coordinate
}

func NewGazetteer(entries map[string]geo.Coordinate) *Gazetteer {
	g := &Gazetteer{entries: make(map[string]geo.Coordinate, len(entries))}
	for addr, c := range entries {
		g.entries[normalizeAddress(addr)] = c
	}
	return g
}

func (g *Gazetteer) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := g.entries[normalizeAddress(address)]
	if !ok {
		return []Candidate{}, nil
	}
	return []Candidate{{Coordinate: c, DisplayName: address, Importance: 1}}, nil
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
