package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
	"github.com/climawatch/weather-api/pkg/logger"
)

type stubReadingRepo struct {
	inserted     []domain.WeatherReading
	maxPrecipFn  func(deviceName string, since time.Time) (*ports.PrecipitationMax, error)
	maxTempFn    func(start, end time.Time) (*ports.TemperatureMax, error)
	stationFn    func(deviceName string, at time.Time) (*ports.StationReading, error)
	timeRangeFn  func(start, end time.Time, limit int64) ([]ports.RangeReading, error)
	updatePrecip float64
}

func (r *stubReadingRepo) Insert(_ context.Context, reading *domain.WeatherReading) (*domain.WeatherReading, error) {
	r.inserted = append(r.inserted, *reading)
	created := *reading
	created.ID = "r1"
	return &created, nil
}

func (r *stubReadingRepo) InsertMany(_ context.Context, rs []domain.WeatherReading) (int, error) {
	r.inserted = append(r.inserted, rs...)
	return len(rs), nil
}

func (r *stubReadingRepo) FindByID(_ context.Context, id string) (*domain.WeatherReading, error) {
	return nil, domain.ErrReadingNotFound
}

func (r *stubReadingRepo) UpdateByID(_ context.Context, id string, upd ports.ReadingUpdate) (*domain.WeatherReading, error) {
	return nil, domain.ErrReadingNotFound
}

func (r *stubReadingRepo) UpdatePrecipitation(_ context.Context, id string, value float64) (*domain.WeatherReading, error) {
	r.updatePrecip = value
	return &domain.WeatherReading{ID: id, Precipitation: value}, nil
}

func (r *stubReadingRepo) DeleteByID(_ context.Context, id string) error {
	return domain.ErrReadingNotFound
}

func (r *stubReadingRepo) MaxPrecipitationSince(_ context.Context, deviceName string, since time.Time) (*ports.PrecipitationMax, error) {
	return r.maxPrecipFn(deviceName, since)
}

func (r *stubReadingRepo) MaxTemperatureBetween(_ context.Context, start, end time.Time) (*ports.TemperatureMax, error) {
	return r.maxTempFn(start, end)
}

func (r *stubReadingRepo) FindByStationAndTime(_ context.Context, deviceName string, at time.Time) (*ports.StationReading, error) {
	return r.stationFn(deviceName, at)
}

func (r *stubReadingRepo) FindByTimeRange(_ context.Context, start, end time.Time, limit int64) ([]ports.RangeReading, error) {
	return r.timeRangeFn(start, end, limit)
}

func newReadingService(repo *stubReadingRepo) *ReadingService {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})
	return NewReadingService(repo, log)
}

func validReading() domain.WeatherReading {
	return domain.WeatherReading{
		DeviceName:          "station_alpha",
		Precipitation:       0.2,
		Time:                time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Latitude:            -27.5,
		Longitude:           153.0,
		Temperature:         22.5,
		AtmosphericPressure: 101.3,
		MaxWindSpeed:        4.2,
		SolarRadiation:      512.0,
		VaporPressure:       1.9,
		Humidity:            65.0,
		WindDirection:       180.0,
	}
}

func TestReadingService_Insert_RejectsOutOfRangeTemperature(t *testing.T) {
	repo := &stubReadingRepo{}
	svc := newReadingService(repo)

	r := validReading()
	r.Temperature = 75
	if _, err := svc.Insert(context.Background(), r); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("invalid reading reached the store")
	}

	r.Temperature = 22.5
	created, err := svc.Insert(context.Background(), r)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestReadingService_Insert_RejectsOutOfRangeHumidity(t *testing.T) {
	repo := &stubReadingRepo{}
	svc := newReadingService(repo)

	r := validReading()
	r.Humidity = 130
	if _, err := svc.Insert(context.Background(), r); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
}

func TestReadingService_InsertMany_ValidatesAllBeforeInsert(t *testing.T) {
	repo := &stubReadingRepo{}
	svc := newReadingService(repo)

	batch := []domain.WeatherReading{validReading(), validReading(), validReading(), validReading(), validReading()}
	batch[2].DeviceName = ""

	if _, err := svc.InsertMany(context.Background(), batch); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("expected zero persisted entries, got %d", len(repo.inserted))
	}
}

func TestReadingService_InsertMany_EmptyBatch(t *testing.T) {
	svc := newReadingService(&stubReadingRepo{})

	if _, err := svc.InsertMany(context.Background(), nil); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
}

func TestReadingService_InsertMany_Success(t *testing.T) {
	repo := &stubReadingRepo{}
	svc := newReadingService(repo)

	n, err := svc.InsertMany(context.Background(), []domain.WeatherReading{validReading(), validReading()})
	if err != nil {
		t.Fatalf("insert many: %v", err)
	}
	if n != 2 || len(repo.inserted) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(repo.inserted))
	}
}

func TestReadingService_MaxPrecipitation_TrailingWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	var gotSince time.Time
	repo := &stubReadingRepo{
		maxPrecipFn: func(deviceName string, since time.Time) (*ports.PrecipitationMax, error) {
			gotSince = since
			return &ports.PrecipitationMax{DeviceName: deviceName, Precipitation: 12.5, Time: now}, nil
		},
	}
	svc := newReadingService(repo)
	svc.now = func() time.Time { return now }

	result, err := svc.MaxPrecipitation(context.Background(), "station_alpha")
	if err != nil {
		t.Fatalf("max precipitation: %v", err)
	}
	want := now.AddDate(0, -5, 0)
	if !gotSince.Equal(want) {
		t.Fatalf("window start = %v, want %v", gotSince, want)
	}
	if result.Precipitation != 12.5 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestReadingService_MaxPrecipitation_NoRecentData(t *testing.T) {
	repo := &stubReadingRepo{
		maxPrecipFn: func(string, time.Time) (*ports.PrecipitationMax, error) {
			return nil, domain.ErrReadingNotFound
		},
	}
	svc := newReadingService(repo)

	if _, err := svc.MaxPrecipitation(context.Background(), "station_alpha"); err != domain.ErrReadingNotFound {
		t.Fatalf("expected ErrReadingNotFound, got %v", err)
	}
}

func TestReadingService_MaxTemperature_ParsesDates(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &stubReadingRepo{
		maxTempFn: func(start, end time.Time) (*ports.TemperatureMax, error) {
			gotStart, gotEnd = start, end
			return &ports.TemperatureMax{DeviceName: "station_alpha", Temperature: 31.2}, nil
		},
	}
	svc := newReadingService(repo)

	if _, err := svc.MaxTemperature(context.Background(), "2024-01-01", "2024-02-01"); err != nil {
		t.Fatalf("max temperature: %v", err)
	}
	if !gotStart.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", gotStart)
	}
	if !gotEnd.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", gotEnd)
	}
}

func TestReadingService_MaxTemperature_InvalidDates(t *testing.T) {
	svc := newReadingService(&stubReadingRepo{})

	cases := [][2]string{
		{"", "2024-02-01"},
		{"2024-01-01", ""},
		{"yesterday", "2024-02-01"},
	}
	for _, c := range cases {
		if _, err := svc.MaxTemperature(context.Background(), c[0], c[1]); !errors.Is(err, domain.ErrInvalidDateRange) {
			t.Fatalf("(%q, %q): expected ErrInvalidDateRange, got %v", c[0], c[1], err)
		}
	}
}

func TestReadingService_StationAt_TrimsTimestamp(t *testing.T) {
	var gotAt time.Time
	repo := &stubReadingRepo{
		stationFn: func(deviceName string, at time.Time) (*ports.StationReading, error) {
			gotAt = at
			return &ports.StationReading{DeviceName: deviceName, Time: at}, nil
		},
	}
	svc := newReadingService(repo)

	if _, err := svc.StationAt(context.Background(), "station_alpha", " 2024-05-01T12:00:00Z\n"); err != nil {
		t.Fatalf("station at: %v", err)
	}
	if !gotAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", gotAt)
	}
}

func TestReadingService_StationAt_InvalidTimestamp(t *testing.T) {
	svc := newReadingService(&stubReadingRepo{})

	if _, err := svc.StationAt(context.Background(), "station_alpha", "noon-ish"); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestReadingService_HumidityWindow_CapsAtTen(t *testing.T) {
	var gotLimit int64
	repo := &stubReadingRepo{
		timeRangeFn: func(start, end time.Time, limit int64) ([]ports.RangeReading, error) {
			gotLimit = limit
			return []ports.RangeReading{{DeviceName: "station_alpha"}}, nil
		},
	}
	svc := newReadingService(repo)

	if _, err := svc.HumidityWindow(context.Background(), "2024-01-01", "2024-02-01"); err != nil {
		t.Fatalf("humidity window: %v", err)
	}
	if gotLimit != 10 {
		t.Fatalf("expected limit 10, got %d", gotLimit)
	}
}

func TestReadingService_HumidityWindow_EmptyIsNotFound(t *testing.T) {
	repo := &stubReadingRepo{
		timeRangeFn: func(time.Time, time.Time, int64) ([]ports.RangeReading, error) {
			return nil, nil
		},
	}
	svc := newReadingService(repo)

	if _, err := svc.HumidityWindow(context.Background(), "2024-01-01", "2024-02-01"); err != domain.ErrReadingNotFound {
		t.Fatalf("expected ErrReadingNotFound, got %v", err)
	}
}

func TestReadingService_Update_RangeChecks(t *testing.T) {
	svc := newReadingService(&stubReadingRepo{})

	tooHot := 80.0
	if _, err := svc.Update(context.Background(), "r1", ports.ReadingUpdate{Temperature: &tooHot}); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}

	negHumidity := -1.0
	if _, err := svc.Update(context.Background(), "r1", ports.ReadingUpdate{Humidity: &negHumidity}); !errors.Is(err, domain.ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
}
