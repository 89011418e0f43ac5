package domain

import (
	"fmt"
	"time"
)

// Physical plausibility bounds enforced at write time.
const (
	MinTemperature = -50.0
	MaxTemperature = 60.0
	MinHumidity    = 0.0
	MaxHumidity    = 100.0
)

// WeatherReading is a single sensor observation. All twelve fields are
// required on creation; numeric fields are double precision.
type WeatherReading struct {
	ID                  string    `json:"id"`
	DeviceName          string    `json:"device_name"`
	Precipitation       float64   `json:"precipitation"`
	Time                time.Time `json:"time"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Temperature         float64   `json:"temperature"`
	AtmosphericPressure float64   `json:"atmospheric_pressure"`
	MaxWindSpeed        float64   `json:"max_wind_speed"`
	SolarRadiation      float64   `json:"solar_radiation"`
	VaporPressure       float64   `json:"vapor_pressure"`
	Humidity            float64   `json:"humidity"`
	WindDirection       float64   `json:"wind_direction"`
}

// Validate enforces presence of the identifying fields and the physical
// ranges for temperature and humidity.
func (r *WeatherReading) Validate() error {
	if r.DeviceName == "" {
		return fmt.Errorf("%w: device name is required", ErrInvalidReading)
	}
	if r.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidReading)
	}
	if r.Temperature < MinTemperature || r.Temperature > MaxTemperature {
		return fmt.Errorf("%w: temperature %.1f outside [%g, %g]", ErrInvalidReading, r.Temperature, MinTemperature, MaxTemperature)
	}
	if r.Humidity < MinHumidity || r.Humidity > MaxHumidity {
		return fmt.Errorf("%w: humidity %.1f outside [%g, %g]", ErrInvalidReading, r.Humidity, MinHumidity, MaxHumidity)
	}
	return nil
}

// FieldLabels maps canonical reading field identifiers to the display labels
// used by the original sensor CSV exports. Storage identity stays decoupled
// from presentation.
var FieldLabels = map[string]string{
	"device_name":          "Device Name",
	"precipitation":        "Precipitation mm/h",
	"time":                 "Time",
	"latitude":             "Latitude",
	"longitude":            "Longitude",
	"temperature":          "Temperature (°C)",
	"atmospheric_pressure": "Atmospheric Pressure (kPa)",
	"max_wind_speed":       "Max Wind Speed (m/s)",
	"solar_radiation":      "Solar Radiation (W/m2)",
	"vapor_pressure":       "Vapor Pressure (kPa)",
	"humidity":             "Humidity (%)",
	"wind_direction":       "Wind Direction (°)",
}
