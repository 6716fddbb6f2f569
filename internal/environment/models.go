package environment

// Snapshot is the merged weather and air-quality view for one area.
//
// Numeric ranges stay at zero when their sub-fetch fails; Error names every
// sub-fetch that did not succeed.
type Snapshot struct {
	Forecast     string  `json:"forecast"` // "N/A" when unavailable
	TempLow      int     `json:"tempLowC"`
	TempHigh     int     `json:"tempHighC"`
	HumidityLow  int     `json:"humidityLowPercent"`
	HumidityHigh int     `json:"humidityHighPercent"`
	PM25         *int    `json:"pm25,omitempty"`
	PM25Level    string  `json:"pm25Level"`
	PM25CSSHint  string  `json:"pm25CssHint"`
	Error        *string `json:"error,omitempty"`
}

// Endpoints are the three fixed environment APIs a Fetcher reads.
type Endpoints struct {
	ShortForecast string
	LongForecast  string
	PM25          string
}

// DefaultBaseURL is the public data.gov.sg environment API root.
const DefaultBaseURL = "https://api.data.gov.sg/v1/environment"

// EndpointsFrom builds the standard endpoint set under base.
func EndpointsFrom(base string) Endpoints {
	return Endpoints{
		ShortForecast: base + "/2-hour-weather-forecast",
		LongForecast:  base + "/24-hour-weather-forecast",
		PM25:          base + "/pm25",
	}
}

// Ranges holds the general 24-hour temperature and humidity outlook.
type Ranges struct {
	TempLow      int
	TempHigh     int
	HumidityLow  int
	HumidityHigh int
}
