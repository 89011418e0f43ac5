package handler

import (
	"time"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

// readingRequest carries one candidate observation. Every field is required;
// pointers distinguish an absent field from a legitimate zero value.
type readingRequest struct {
	DeviceName          *string    `json:"device_name"          validate:"required"`
	Precipitation       *float64   `json:"precipitation"        validate:"required"`
	Time                *time.Time `json:"time"                 validate:"required"`
	Latitude            *float64   `json:"latitude"             validate:"required"`
	Longitude           *float64   `json:"longitude"            validate:"required"`
	Temperature         *float64   `json:"temperature"          validate:"required"`
	AtmosphericPressure *float64   `json:"atmospheric_pressure" validate:"required"`
	MaxWindSpeed        *float64   `json:"max_wind_speed"       validate:"required"`
	SolarRadiation      *float64   `json:"solar_radiation"      validate:"required"`
	VaporPressure       *float64   `json:"vapor_pressure"       validate:"required"`
	Humidity            *float64   `json:"humidity"             validate:"required"`
	WindDirection       *float64   `json:"wind_direction"       validate:"required"`
}

func (r readingRequest) toDomain() domain.WeatherReading {
	return domain.WeatherReading{
		DeviceName:          *r.DeviceName,
		Precipitation:       *r.Precipitation,
		Time:                *r.Time,
		Latitude:            *r.Latitude,
		Longitude:           *r.Longitude,
		Temperature:         *r.Temperature,
		AtmosphericPressure: *r.AtmosphericPressure,
		MaxWindSpeed:        *r.MaxWindSpeed,
		SolarRadiation:      *r.SolarRadiation,
		VaporPressure:       *r.VaporPressure,
		Humidity:            *r.Humidity,
		WindDirection:       *r.WindDirection,
	}
}

type updateReadingRequest struct {
	DeviceName          *string    `json:"device_name"`
	Precipitation       *float64   `json:"precipitation"`
	Time                *time.Time `json:"time"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	Temperature         *float64   `json:"temperature"`
	AtmosphericPressure *float64   `json:"atmospheric_pressure"`
	MaxWindSpeed        *float64   `json:"max_wind_speed"`
	SolarRadiation      *float64   `json:"solar_radiation"`
	VaporPressure       *float64   `json:"vapor_pressure"`
	Humidity            *float64   `json:"humidity"`
	WindDirection       *float64   `json:"wind_direction"`
}

func (r updateReadingRequest) toUpdate() ports.ReadingUpdate {
	return ports.ReadingUpdate{
		DeviceName:          r.DeviceName,
		Precipitation:       r.Precipitation,
		Time:                r.Time,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Temperature:         r.Temperature,
		AtmosphericPressure: r.AtmosphericPressure,
		MaxWindSpeed:        r.MaxWindSpeed,
		SolarRadiation:      r.SolarRadiation,
		VaporPressure:       r.VaporPressure,
		Humidity:            r.Humidity,
		WindDirection:       r.WindDirection,
	}
}

type precipitationRequest struct {
	Precipitation *float64 `json:"precipitation" validate:"required"`
}

// --- Response types (projections stay decoupled from internal types) ---

type readingResponse struct {
	Success bool                   `json:"success"`
	Reading *domain.WeatherReading `json:"reading"`
}

type readingMessageResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Reading *domain.WeatherReading `json:"reading,omitempty"`
}

type bulkInsertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type maxPrecipitationData struct {
	DeviceName    string    `json:"device_name"`
	Precipitation float64   `json:"precipitation"`
	Time          time.Time `json:"time"`
}

type maxTemperatureData struct {
	DeviceName  string    `json:"device_name"`
	Temperature float64   `json:"temperature"`
	Time        time.Time `json:"time"`
}

type stationReadingData struct {
	DeviceName          string    `json:"device_name"`
	Temperature         float64   `json:"temperature"`
	AtmosphericPressure float64   `json:"atmospheric_pressure"`
	SolarRadiation      float64   `json:"solar_radiation"`
	Precipitation       float64   `json:"precipitation"`
	VaporPressure       float64   `json:"vapor_pressure"`
	Humidity            float64   `json:"humidity"`
	MaxWindSpeed        float64   `json:"max_wind_speed"`
	WindDirection       float64   `json:"wind_direction"`
	Time                time.Time `json:"time"`
}

type rangeReadingData struct {
	DeviceName    string    `json:"device_name"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Precipitation float64   `json:"precipitation"`
	Time          time.Time `json:"time"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}
