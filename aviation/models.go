package aviation

// Airport is an airport with a unique identifier and a position.
// Airports are immutable once loaded.
type Airport struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name,omitempty"`
	City      string `json:"city,omitempty"`
	CountryID string `json:"countryId,omitempty"`
	Coordinate
}

// DistanceTo returns the great-circle distance in kilometres to other.
func (a Airport) DistanceTo(other Airport) float64 {
	return a.Coordinate.DistanceTo(other.Coordinate)
}

// Airline is an operator of flights. TotalDistance stays nil until a
// ranking computes it for a particular origin airport.
type Airline struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	TotalDistance *float64 `json:"totalDistance,omitempty"`
}

// Distance returns TotalDistance, or 0 when it has not been computed.
func (a Airline) Distance() float64 {
	if a.TotalDistance == nil {
		return 0
	}
	return *a.TotalDistance
}

// WithDistance returns a copy of the airline carrying the given total.
func (a Airline) WithDistance(km float64) Airline {
	a.TotalDistance = &km
	return a
}

// Flight is a scheduled connection operated by one airline.
type Flight struct {
	AirlineID          string `json:"airlineId" validate:"required"`
	FlightNumber       string `json:"flightNumber,omitempty"`
	DepartureAirportID string `json:"departureAirportId" validate:"required"`
	ArrivalAirportID   string `json:"arrivalAirportId" validate:"required"`
}
