package transit

import (
	"fmt"
	"math"
	"time"
)

// Layouts accepted for EstimatedArrival. The zone-less ones are read as UTC.
var arrivalLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseSlot turns one upcoming-bus slot into an ArrivalRecord relative to now.
// An empty arrival time yields a placeholder with HasData false.
func parseSlot(slot busSlot, now time.Time) (ArrivalRecord, error) {
	if slot.EstimatedArrival == "" {
		return ArrivalRecord{
			Load:        LoadUnknown,
			VehicleType: VehicleUnknown,
		}, nil
	}

	estimated, err := parseArrivalTime(slot.EstimatedArrival)
	if err != nil {
		return ArrivalRecord{}, err
	}

	minutes := MinutesUntil(estimated, now)

	return ArrivalRecord{
		EstimatedArrival:     &estimated,
		MinutesAway:          &minutes,
		Load:                 ParseLoad(slot.Load),
		VehicleType:          ParseVehicleType(slot.Type),
		WheelchairAccessible: slot.Feature == wheelchairFeature,
		IsArriving:           minutes <= 1,
		HasData:              true,
	}, nil
}

// MinutesUntil returns the whole minutes from now until t, floored and clamped
// at zero.
func MinutesUntil(t, now time.Time) int {
	minutes := int(math.Floor(t.Sub(now).Seconds() / 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}

func parseArrivalTime(s string) (time.Time, error) {
	for _, layout := range arrivalLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid arrival time %q", s)
}
