package models

import "time"

// WeatherStation is a monitored location weather is refreshed for.
type WeatherStation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	County    string    `json:"county"`
	Subcounty string    `json:"subcounty,omitempty"`
	Elevation int       `json:"elevation"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// WeatherData sources.
const (
	WeatherSourceAPI         = "api"
	WeatherSourceStation     = "station"
	WeatherSourceObservation = "observation"
)

// WeatherData is one weather reading tied to a location.
type WeatherData struct {
	ID        string `json:"id"`
	StationID string `json:"station_id,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	County    string  `json:"county"`

	Temperature   float64  `json:"temperature"`
	FeelsLike     *float64 `json:"feels_like,omitempty"`
	TempMin       *float64 `json:"temp_min,omitempty"`
	TempMax       *float64 `json:"temp_max,omitempty"`
	Humidity      int      `json:"humidity"`
	Pressure      int      `json:"pressure"`
	WindSpeed     float64  `json:"wind_speed"`
	WindDirection *int     `json:"wind_direction,omitempty"`
	Rainfall      float64  `json:"rainfall"`
	Clouds        *int     `json:"clouds,omitempty"`
	Visibility    *float64 `json:"visibility,omitempty"`

	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`

	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeatherForecast is a daily forecast for a location.
type WeatherForecast struct {
	ID           string    `json:"id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	County       string    `json:"county"`
	ForecastDate time.Time `json:"forecast_date"`
	TempMin      float64   `json:"temp_min"`
	TempMax      float64   `json:"temp_max"`
	TempAvg      float64   `json:"temp_avg"`
	Humidity     int       `json:"humidity"`
	WindSpeed    float64   `json:"wind_speed"`
	Rainfall     float64   `json:"rainfall"`
	POP          int       `json:"pop"`
	Condition    string    `json:"condition"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WeatherEvent is a named weather alert reported by the weather gateway.
type WeatherEvent struct {
	Event       string    `json:"event"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Sender      string    `json:"sender"`
}

// WeatherSummary aggregates readings for a county over a rolling window.
type WeatherSummary struct {
	County       string  `json:"county"`
	PeriodDays   int     `json:"period_days"`
	AvgTemp      float64 `json:"average_temperature"`
	AvgHumidity  float64 `json:"average_humidity"`
	AvgRainfall  float64 `json:"average_rainfall"`
	AvgWindSpeed float64 `json:"average_wind_speed"`
	RecordCount  int     `json:"record_count"`
}
