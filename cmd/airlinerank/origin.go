package main

import (
	"fmt"
	"math"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/catalog"
	"github.com/kbukum/airlinerank/errors"
	"github.com/kbukum/airlinerank/validation"
)

// originSelector picks the origin airport from the catalog, either by id or
// as the airport nearest to a position.
type originSelector struct {
	id  string
	pos *aviation.Coordinate
}

// newOriginSelector prefers an explicit id, then a position, then the
// configured default id.
func newOriginSelector(id string, lat, lon float64, fallback string) (originSelector, error) {
	if id != "" {
		return originSelector{id: id}, nil
	}
	hasLat, hasLon := !math.IsNaN(lat), !math.IsNaN(lon)
	if hasLat != hasLon {
		return originSelector{}, errors.Validation("-lat and -lon must be given together")
	}
	if hasLat {
		pos := aviation.Coordinate{Latitude: lat, Longitude: lon}
		if err := validation.Validate(pos); err != nil {
			return originSelector{}, err
		}
		return originSelector{pos: &pos}, nil
	}
	if fallback == "" {
		return originSelector{}, errors.Validation("no origin: use -origin, -lat/-lon or set ranking.origin")
	}
	return originSelector{id: fallback}, nil
}

func (s originSelector) resolve(c *catalog.Catalog) (aviation.Airport, error) {
	if s.pos != nil {
		a, _, err := c.Nearest(*s.pos)
		return a, err
	}
	return c.Lookup(s.id)
}

func (s originSelector) String() string {
	if s.pos != nil {
		return fmt.Sprintf("nearest to (%.4f, %.4f)", s.pos.Latitude, s.pos.Longitude)
	}
	return s.id
}
