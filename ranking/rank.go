package ranking

import (
	"sort"

	"github.com/kbukum/airlinerank/aviation"
)

// IndexAirports maps airports by ID. When an ID repeats, the last one wins.
func IndexAirports(airports []aviation.Airport) map[string]aviation.Airport {
	index := make(map[string]aviation.Airport, len(airports))
	for _, a := range airports {
		index[a.ID] = a
	}
	return index
}

// Accumulate sums, per airline, the distance from origin to the arrival
// airport of every flight departing origin. Flights to airports missing
// from the index are skipped.
func Accumulate(origin aviation.Airport, flights []aviation.Flight, airports map[string]aviation.Airport) map[string]float64 {
	totals := make(map[string]float64)
	for _, f := range flights {
		if f.DepartureAirportID != origin.ID {
			continue
		}
		arrival, ok := airports[f.ArrivalAirportID]
		if !ok {
			continue
		}
		totals[f.AirlineID] += origin.DistanceTo(arrival)
	}
	return totals
}

// Rank returns the airlines with a positive total, each carrying its total,
// sorted ascending by total. Ties keep their order in airlines.
func Rank(airlines []aviation.Airline, totals map[string]float64) []aviation.Airline {
	ranked := make([]aviation.Airline, 0, len(totals))
	for _, a := range airlines {
		total := totals[a.ID]
		if total <= 0 {
			continue
		}
		ranked = append(ranked, a.WithDistance(total))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance() < ranked[j].Distance()
	})
	return ranked
}
