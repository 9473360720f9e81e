package domain

// UnknownLocationAddress is shown when a location has no address.
const UnknownLocationAddress = "Unknown Location"

// Location is read-only reference data of a restaurant.
type Location struct {
	ID               string
	Address          string
	Description      string
	TotalCapacity    int
	AverageOccupancy float64
	ImageURL         string
	Rating           float64
}

// DisplayAddress returns the address or a placeholder.
func (l *Location) DisplayAddress() string {
	if l == nil || l.Address == "" {
		return UnknownLocationAddress
	}
	return l.Address
}
