package ports

import (
	"context"

	"github.com/climawatch/weather-api/internal/core/domain"
)

type ReadingService interface {
	Insert(ctx context.Context, r domain.WeatherReading) (*domain.WeatherReading, error)
	// InsertMany validates every candidate before any insertion is attempted;
	// one invalid entry rejects the whole batch.
	InsertMany(ctx context.Context, rs []domain.WeatherReading) (int, error)
	Get(ctx context.Context, id string) (*domain.WeatherReading, error)
	Update(ctx context.Context, id string, upd ReadingUpdate) (*domain.WeatherReading, error)
	UpdatePrecipitation(ctx context.Context, id string, value float64) (*domain.WeatherReading, error)
	Delete(ctx context.Context, id string) error

	MaxPrecipitation(ctx context.Context, deviceName string) (*PrecipitationMax, error)
	MaxTemperature(ctx context.Context, startDate, endDate string) (*TemperatureMax, error)
	StationAt(ctx context.Context, deviceName, timestamp string) (*StationReading, error)
	HumidityWindow(ctx context.Context, startDate, endDate string) ([]RangeReading, error)
}
