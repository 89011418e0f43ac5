package ports

import (
	"context"
	"time"

	"github.com/climawatch/weather-api/internal/core/domain"
)

// PrecipitationMax is the projection returned by the trailing-window
// max-precipitation query.
type PrecipitationMax struct {
	DeviceName    string
	Precipitation float64
	Time          time.Time
}

// TemperatureMax is the projection returned by the date-range
// max-temperature query.
type TemperatureMax struct {
	DeviceName  string
	Temperature float64
	Time        time.Time
}

// StationReading is the fixed field subset returned by the exact
// station+timestamp lookup.
type StationReading struct {
	DeviceName          string
	Temperature         float64
	AtmosphericPressure float64
	SolarRadiation      float64
	Precipitation       float64
	VaporPressure       float64
	Humidity            float64
	MaxWindSpeed        float64
	WindDirection       float64
	Time                time.Time
}

// RangeReading is the projection used by the capped humidity/precipitation
// time-range scan.
type RangeReading struct {
	DeviceName    string
	Temperature   float64
	Humidity      float64
	Precipitation float64
	Time          time.Time
}

// ReadingUpdate carries a partial reading update. Nil fields are left
// untouched.
type ReadingUpdate struct {
	DeviceName          *string
	Precipitation       *float64
	Time                *time.Time
	Latitude            *float64
	Longitude           *float64
	Temperature         *float64
	AtmosphericPressure *float64
	MaxWindSpeed        *float64
	SolarRadiation      *float64
	VaporPressure       *float64
	Humidity            *float64
	WindDirection       *float64
}

// ReadingRepository defines the persistence contract for weather readings.
type ReadingRepository interface {
	Insert(ctx context.Context, r *domain.WeatherReading) (*domain.WeatherReading, error)
	// InsertMany persists a pre-validated batch as a single store call. The
	// store's native multi-document guarantees apply.
	InsertMany(ctx context.Context, rs []domain.WeatherReading) (int, error)
	FindByID(ctx context.Context, id string) (*domain.WeatherReading, error)
	UpdateByID(ctx context.Context, id string, upd ReadingUpdate) (*domain.WeatherReading, error)
	UpdatePrecipitation(ctx context.Context, id string, value float64) (*domain.WeatherReading, error)
	DeleteByID(ctx context.Context, id string) error

	// MaxPrecipitationSince returns the single reading with the highest
	// precipitation for the device at or after since. Ties break on the most
	// recent time.
	MaxPrecipitationSince(ctx context.Context, deviceName string, since time.Time) (*PrecipitationMax, error)
	// MaxTemperatureBetween returns the single hottest reading across all
	// devices within [start, end] inclusive. Ties break on the most recent
	// time.
	MaxTemperatureBetween(ctx context.Context, start, end time.Time) (*TemperatureMax, error)
	// FindByStationAndTime matches device name and timestamp exactly.
	FindByStationAndTime(ctx context.Context, deviceName string, at time.Time) (*StationReading, error)
	// FindByTimeRange returns up to limit readings within [start, end],
	// sorted ascending by time.
	FindByTimeRange(ctx context.Context, start, end time.Time, limit int64) ([]RangeReading, error)
}
