package transit

import "time"

// Load is the passenger load reported for an upcoming bus.
type Load string

const (
	LoadUnknown           Load = "unknown"
	LoadSeatsAvailable    Load = "seats_available"
	LoadStandingAvailable Load = "standing_available"
	LoadLimitedStanding   Load = "limited_standing"
)

// VehicleType is the kind of bus serving an arrival.
type VehicleType string

const (
	VehicleUnknown    VehicleType = "unknown"
	VehicleSingleDeck VehicleType = "single_deck"
	VehicleDoubleDeck VehicleType = "double_deck"
	VehicleBendy      VehicleType = "bendy"
)

// Upstream codes for load, vehicle type and accessibility.
var (
	loadCodes = map[string]Load{
		"SEA": LoadSeatsAvailable,
		"SDA": LoadStandingAvailable,
		"LSD": LoadLimitedStanding,
	}
	vehicleCodes = map[string]VehicleType{
		"SD": VehicleSingleDeck,
		"DD": VehicleDoubleDeck,
		"BD": VehicleBendy,
	}
)

const wheelchairFeature = "WAB"

// ParseLoad maps an upstream load code, returning LoadUnknown for anything
// outside the table.
func ParseLoad(code string) Load {
	if l, ok := loadCodes[code]; ok {
		return l
	}
	return LoadUnknown
}

// ParseVehicleType maps an upstream vehicle code, returning VehicleUnknown for
// anything outside the table.
func ParseVehicleType(code string) VehicleType {
	if v, ok := vehicleCodes[code]; ok {
		return v
	}
	return VehicleUnknown
}

// ArrivalRecord is one predicted bus arrival. When HasData is false the record
// is a placeholder and every other field holds its zero or unknown value.
type ArrivalRecord struct {
	EstimatedArrival     *time.Time  `json:"estimatedArrival,omitempty"`
	MinutesAway          *int        `json:"minutesAway,omitempty"`
	Load                 Load        `json:"load"`
	VehicleType          VehicleType `json:"vehicleType"`
	WheelchairAccessible bool        `json:"wheelchairAccessible"`
	IsArriving           bool        `json:"isArriving"`
	HasData              bool        `json:"hasData"`
}

// ArrivalQueryResult is the outcome of one (stop, route) lookup. Error is set
// only when the lookup failed, in which case Arrivals is empty.
type ArrivalQueryResult struct {
	StopID    string          `json:"stopId"`
	RouteID   string          `json:"routeId"`
	Arrivals  []ArrivalRecord `json:"arrivals"`
	FetchedAt time.Time       `json:"fetchedAt"` // always UTC
	Error     *string         `json:"error,omitempty"`
}
