package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

type stubReadingService struct {
	inserted   []domain.WeatherReading
	manyCalled bool
	maxPrecip  *ports.PrecipitationMax
	maxTemp    *ports.TemperatureMax
	window     []ports.RangeReading
}

func (s *stubReadingService) Insert(_ context.Context, r domain.WeatherReading) (*domain.WeatherReading, error) {
	s.inserted = append(s.inserted, r)
	r.ID = "r1"
	return &r, nil
}

func (s *stubReadingService) InsertMany(_ context.Context, rs []domain.WeatherReading) (int, error) {
	s.manyCalled = true
	s.inserted = append(s.inserted, rs...)
	return len(rs), nil
}

func (s *stubReadingService) Get(_ context.Context, id string) (*domain.WeatherReading, error) {
	return nil, domain.ErrReadingNotFound
}

func (s *stubReadingService) Update(_ context.Context, id string, upd ports.ReadingUpdate) (*domain.WeatherReading, error) {
	return nil, domain.ErrReadingNotFound
}

func (s *stubReadingService) UpdatePrecipitation(_ context.Context, id string, value float64) (*domain.WeatherReading, error) {
	return &domain.WeatherReading{ID: id, Precipitation: value}, nil
}

func (s *stubReadingService) Delete(_ context.Context, id string) error {
	return nil
}

func (s *stubReadingService) MaxPrecipitation(_ context.Context, deviceName string) (*ports.PrecipitationMax, error) {
	if s.maxPrecip == nil {
		return nil, domain.ErrReadingNotFound
	}
	return s.maxPrecip, nil
}

func (s *stubReadingService) MaxTemperature(_ context.Context, startDate, endDate string) (*ports.TemperatureMax, error) {
	if s.maxTemp == nil {
		return nil, domain.ErrReadingNotFound
	}
	return s.maxTemp, nil
}

func (s *stubReadingService) StationAt(_ context.Context, deviceName, timestamp string) (*ports.StationReading, error) {
	return nil, domain.ErrReadingNotFound
}

func (s *stubReadingService) HumidityWindow(_ context.Context, startDate, endDate string) ([]ports.RangeReading, error) {
	return s.window, nil
}

const validReadingJSON = `{
	"device_name": "WS-100",
	"precipitation": 0.5,
	"time": "2026-05-04T10:00:00Z",
	"latitude": 152.77,
	"longitude": -26.95,
	"temperature": 22.5,
	"atmospheric_pressure": 101.3,
	"max_wind_speed": 4.2,
	"solar_radiation": 530,
	"vapor_pressure": 1.7,
	"humidity": 65,
	"wind_direction": 160
}`

func TestWeatherHandler_Insert(t *testing.T) {
	svc := &stubReadingService{}
	h := NewWeatherHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/weather", validReadingJSON)

	if err := h.Insert(c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.inserted) != 1 || svc.inserted[0].DeviceName != "WS-100" {
		t.Fatalf("reading not forwarded: %+v", svc.inserted)
	}
}

// Zero is a legal value for several fields; a present-but-zero field must
// pass validation while an absent one must not.
func TestWeatherHandler_Insert_ZeroValuePresent(t *testing.T) {
	svc := &stubReadingService{}
	h := NewWeatherHandler(svc)

	body := strings.Replace(validReadingJSON, `"precipitation": 0.5`, `"precipitation": 0`, 1)
	c, rec := newTestContext(t, http.MethodPost, "/api/weather", body)

	if err := h.Insert(c); err != nil {
		t.Fatalf("insert with zero precipitation: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestWeatherHandler_Insert_MissingField(t *testing.T) {
	h := NewWeatherHandler(&stubReadingService{})

	body := strings.Replace(validReadingJSON, `"humidity": 65,`, "", 1)
	c, _ := newTestContext(t, http.MethodPost, "/api/weather", body)

	err := h.Insert(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestWeatherHandler_InsertBulk(t *testing.T) {
	svc := &stubReadingService{}
	h := NewWeatherHandler(svc)

	body := "[" + validReadingJSON + "," + validReadingJSON + "]"
	c, rec := newTestContext(t, http.MethodPost, "/api/weather/multiple", body)

	if err := h.InsertBulk(c); err != nil {
		t.Fatalf("bulk insert: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.inserted) != 2 {
		t.Fatalf("expected 2 readings forwarded, got %d", len(svc.inserted))
	}
}

func TestWeatherHandler_InsertBulk_BadEntryRejectsBatch(t *testing.T) {
	svc := &stubReadingService{}
	h := NewWeatherHandler(svc)

	bad := strings.Replace(validReadingJSON, `"device_name": "WS-100",`, "", 1)
	body := "[" + validReadingJSON + "," + bad + "]"
	c, _ := newTestContext(t, http.MethodPost, "/api/weather/multiple", body)

	err := h.InsertBulk(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "entry 1") {
		t.Fatalf("error should name the bad entry: %v", he.Message)
	}
	if svc.manyCalled {
		t.Fatalf("nothing should be persisted when validation fails")
	}
}

func TestWeatherHandler_InsertBulk_EmptyBody(t *testing.T) {
	h := NewWeatherHandler(&stubReadingService{})

	for _, body := range []string{"[]", "{}"} {
		c, _ := newTestContext(t, http.MethodPost, "/api/weather/multiple", body)
		err := h.InsertBulk(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %v", body, err)
		}
	}
}

func TestWeatherHandler_MaxPrecipitation(t *testing.T) {
	at := time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)
	svc := &stubReadingService{maxPrecip: &ports.PrecipitationMax{
		DeviceName: "WS-100", Precipitation: 12.4, Time: at,
	}}
	h := NewWeatherHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/weather/WS-100/max-precipitation", "")
	c.SetParamNames("deviceName")
	c.SetParamValues("WS-100")

	if err := h.MaxPrecipitation(c); err != nil {
		t.Fatalf("max precipitation: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "12.4") {
		t.Fatalf("precipitation missing from body: %s", rec.Body.String())
	}
}

func TestWeatherHandler_UpdatePrecipitation_RequiresValue(t *testing.T) {
	h := NewWeatherHandler(&stubReadingService{})

	c, _ := newTestContext(t, http.MethodPut, "/api/weather/r1/precipitation", "{}")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	err := h.UpdatePrecipitation(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "Precipitation value is required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
