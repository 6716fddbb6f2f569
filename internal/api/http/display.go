package httpapi

import (
	"strconv"
	"time"

	"github.com/i474232898/home-dashboard/internal/transit"
)

// sgt is the wall clock the household screens run on.
var sgt = time.FixedZone("SGT", 8*60*60)

const missingTime = "--:--"

// badge is how a load level is shown on the page.
type badge struct {
	Text  string
	Class string
}

var loadBadges = map[transit.Load]badge{
	transit.LoadSeatsAvailable:    {Text: "Seats Avail", Class: "load-seats"},
	transit.LoadStandingAvailable: {Text: "Standing", Class: "load-standing"},
	transit.LoadLimitedStanding:   {Text: "Full", Class: "load-full"},
}

var vehicleLabels = map[transit.VehicleType]string{
	transit.VehicleSingleDeck: "Single",
	transit.VehicleDoubleDeck: "Double",
	transit.VehicleBendy:      "Bendy",
}

func loadBadge(l transit.Load) badge {
	if b, ok := loadBadges[l]; ok {
		return b
	}
	return badge{Text: "Unknown", Class: "load-unknown"}
}

func vehicleLabel(v transit.VehicleType) string {
	if s, ok := vehicleLabels[v]; ok {
		return s
	}
	return "?"
}

// formatTime renders t as HH:MM in SGT.
func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return missingTime
	}
	return t.In(sgt).Format("15:04")
}

func formatMinutes(m *int) string {
	if m == nil {
		return "-"
	}
	if *m == 0 {
		return "Arr"
	}
	return strconv.Itoa(*m)
}
