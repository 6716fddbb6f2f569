package environment

// PM2.5 one-hour bands, each an inclusive upper bound.
const (
	pm25GoodMax          = 55
	pm25ModerateMax      = 150
	pm25UnhealthyMax     = 250
	pm25VeryUnhealthyMax = 350
)

// PM25Level labels a one-hour PM2.5 reading.
func PM25Level(value int) string {
	switch {
	case value <= pm25GoodMax:
		return "Good"
	case value <= pm25ModerateMax:
		return "Moderate"
	case value <= pm25UnhealthyMax:
		return "Unhealthy"
	case value <= pm25VeryUnhealthyMax:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// PM25CSSHint returns the style class for a one-hour PM2.5 reading.
func PM25CSSHint(value int) string {
	switch {
	case value <= pm25GoodMax:
		return "aqi-good"
	case value <= pm25ModerateMax:
		return "aqi-moderate"
	default:
		return "aqi-unhealthy"
	}
}
