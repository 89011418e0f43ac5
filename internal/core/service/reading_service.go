package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

const (
	// trailingWindowMonths is the lookback for the per-device
	// max-precipitation query.
	trailingWindowMonths = 5
	// rangeScanLimit caps the humidity/precipitation range scan.
	rangeScanLimit = 10
)

// ReadingService validates inputs and shapes the time-window and aggregate
// queries over the reading store.
type ReadingService struct {
	repo   ports.ReadingRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewReadingService(repo ports.ReadingRepository, logger zerolog.Logger) *ReadingService {
	return &ReadingService{repo: repo, logger: logger, now: time.Now}
}

func (s *ReadingService) Insert(ctx context.Context, r domain.WeatherReading) (*domain.WeatherReading, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Insert(ctx, &r)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("device", created.DeviceName).Time("time", created.Time).Msg("reading inserted")
	return created, nil
}

// InsertMany applies a validate-all-then-insert-all policy: the store is not
// touched unless every entry in the batch is valid.
func (s *ReadingService) InsertMany(ctx context.Context, rs []domain.WeatherReading) (int, error) {
	if len(rs) == 0 {
		return 0, fmt.Errorf("%w: batch must not be empty", domain.ErrInvalidReading)
	}
	for i := range rs {
		if err := rs[i].Validate(); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	n, err := s.repo.InsertMany(ctx, rs)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int("count", n).Msg("readings bulk-inserted")
	return n, nil
}

func (s *ReadingService) Get(ctx context.Context, id string) (*domain.WeatherReading, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReadingService) Update(ctx context.Context, id string, upd ports.ReadingUpdate) (*domain.WeatherReading, error) {
	if upd.Temperature != nil {
		if *upd.Temperature < domain.MinTemperature || *upd.Temperature > domain.MaxTemperature {
			return nil, fmt.Errorf("%w: temperature %.1f outside [%g, %g]", domain.ErrInvalidReading,
				*upd.Temperature, domain.MinTemperature, domain.MaxTemperature)
		}
	}
	if upd.Humidity != nil {
		if *upd.Humidity < domain.MinHumidity || *upd.Humidity > domain.MaxHumidity {
			return nil, fmt.Errorf("%w: humidity %.1f outside [%g, %g]", domain.ErrInvalidReading,
				*upd.Humidity, domain.MinHumidity, domain.MaxHumidity)
		}
	}
	return s.repo.UpdateByID(ctx, id, upd)
}

// UpdatePrecipitation is the narrow single-field update path.
func (s *ReadingService) UpdatePrecipitation(ctx context.Context, id string, value float64) (*domain.WeatherReading, error) {
	return s.repo.UpdatePrecipitation(ctx, id, value)
}

func (s *ReadingService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// MaxPrecipitation returns the highest-precipitation reading for the device
// in the trailing five-month window.
func (s *ReadingService) MaxPrecipitation(ctx context.Context, deviceName string) (*ports.PrecipitationMax, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("%w: device name is required", domain.ErrInvalidReading)
	}
	since := s.now().UTC().AddDate(0, -trailingWindowMonths, 0)
	return s.repo.MaxPrecipitationSince(ctx, deviceName, since)
}

// MaxTemperature returns the hottest reading across all devices within the
// inclusive date range.
func (s *ReadingService) MaxTemperature(ctx context.Context, startDate, endDate string) (*ports.TemperatureMax, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.MaxTemperatureBetween(ctx, start, end)
}

// StationAt looks up the reading matching the device and the exact stored
// timestamp. The timestamp is trimmed but never widened to a range.
func (s *ReadingService) StationAt(ctx context.Context, deviceName, timestamp string) (*ports.StationReading, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("%w: device name is required", domain.ErrInvalidReading)
	}
	at, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStationAndTime(ctx, deviceName, at)
}

// HumidityWindow returns up to ten readings in the inclusive date range,
// oldest first.
func (s *ReadingService) HumidityWindow(ctx context.Context, startDate, endDate string) ([]ports.RangeReading, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	results, err := s.repo.FindByTimeRange(ctx, start, end, rangeScanLimit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.ErrReadingNotFound
	}
	return results, nil
}
