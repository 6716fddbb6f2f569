package environment

import "strings"

// Sub-fetch names in the order they are reported.
const (
	componentForecast    = "weather forecast"
	componentTemperature = "temperature"
	componentPM25        = "PM2.5"
)

// PartialFailure lists the sub-fetches that failed while building a Snapshot.
type PartialFailure struct {
	Components []string
}

func (p *PartialFailure) Error() string {
	return "Failed to fetch: " + strings.Join(p.Components, ", ")
}

// readings carries the raw outcome of each sub-fetch.
type readings struct {
	forecast    string
	forecastErr error
	ranges      Ranges
	rangesErr   error
	pm25        *int
	pm25Err     error
}

// merge combines the sub-fetch outcomes into a Snapshot. Failures are listed
// in fixed order regardless of which sub-fetch finished first.
func merge(r readings) Snapshot {
	snap := Snapshot{
		Forecast:  r.forecast,
		PM25Level: "N/A",
	}

	var failed []string

	if r.forecastErr != nil {
		failed = append(failed, componentForecast)
		snap.Forecast = ""
	}
	if snap.Forecast == "" {
		snap.Forecast = "N/A"
	}

	if r.rangesErr != nil {
		failed = append(failed, componentTemperature)
	} else {
		snap.TempLow = r.ranges.TempLow
		snap.TempHigh = r.ranges.TempHigh
		snap.HumidityLow = r.ranges.HumidityLow
		snap.HumidityHigh = r.ranges.HumidityHigh
	}

	if r.pm25Err != nil {
		failed = append(failed, componentPM25)
	} else if r.pm25 != nil {
		v := *r.pm25
		snap.PM25 = &v
		snap.PM25Level = PM25Level(v)
		snap.PM25CSSHint = PM25CSSHint(v)
	}

	if len(failed) > 0 {
		msg := (&PartialFailure{Components: failed}).Error()
		snap.Error = &msg
	}

	return snap
}
