package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/climawatch/weather-api/internal/api/metrics"
	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

// WeatherHandler handles reading ingestion and the aggregate queries.
type WeatherHandler struct {
	readings ports.ReadingService
}

func NewWeatherHandler(readings ports.ReadingService) *WeatherHandler {
	return &WeatherHandler{readings: readings}
}

// Insert persists a single reading.
//
// @Summary      Insert one weather reading
// @Tags         weather
// @Accept       json
// @Produce      json
// @Param        body  body      readingRequest  true  "Weather reading"
// @Success      201   {object}  readingMessageResponse
// @Failure      400   {object}  map[string]string
// @Router       /weather [post]
func (h *WeatherHandler) Insert(c echo.Context) error {
	var req readingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reading, err := h.readings.Insert(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	metrics.ReadingsIngestedTotal.WithLabelValues("single").Inc()
	return c.JSON(http.StatusCreated, readingMessageResponse{
		Success: true,
		Message: "Weather reading inserted successfully",
		Reading: reading,
	})
}

// InsertBulk persists a batch of readings. Every entry is validated before
// any insertion is attempted; one bad entry rejects the whole batch.
//
// @Summary      Bulk-insert weather readings
// @Tags         weather
// @Accept       json
// @Produce      json
// @Param        body  body      []readingRequest  true  "Weather readings"
// @Success      201   {object}  bulkInsertResponse
// @Failure      400   {object}  map[string]string
// @Router       /weather/multiple [post]
func (h *WeatherHandler) InsertBulk(c echo.Context) error {
	var reqs []readingRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a non-empty array of weather readings")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a non-empty array of weather readings")
	}

	batch := make([]domain.WeatherReading, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("entry %d: %s", i, err.Error()))
		}
		batch = append(batch, req.toDomain())
	}

	count, err := h.readings.InsertMany(c.Request().Context(), batch)
	if err != nil {
		return err
	}

	metrics.ReadingsIngestedTotal.WithLabelValues("bulk").Add(float64(count))
	return c.JSON(http.StatusCreated, bulkInsertResponse{
		Success: true,
		Message: fmt.Sprintf("%d weather readings inserted successfully", count),
		Count:   count,
	})
}

// Get returns a reading by id.
//
// @Summary      Get a weather reading
// @Tags         weather
// @Produce      json
// @Param        id   path      string  true  "Reading id"
// @Success      200  {object}  readingResponse
// @Failure      404  {object}  map[string]string
// @Router       /weather/{id} [get]
func (h *WeatherHandler) Get(c echo.Context) error {
	reading, err := h.readings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readingResponse{Success: true, Reading: reading})
}

// Update applies a partial update to a reading.
//
// @Summary      Update a weather reading
// @Tags         weather
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Reading id"
// @Param        body  body      updateReadingRequest  true  "Fields to update"
// @Success      200   {object}  readingMessageResponse
// @Failure      404   {object}  map[string]string
// @Router       /weather/{id} [put]
func (h *WeatherHandler) Update(c echo.Context) error {
	var req updateReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reading, err := h.readings.Update(c.Request().Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readingMessageResponse{
		Success: true,
		Message: "Weather reading updated successfully",
		Reading: reading,
	})
}

// UpdatePrecipitation is the narrow single-field update path.
//
// @Summary      Update the precipitation value of a reading
// @Tags         weather
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Reading id"
// @Param        body  body      precipitationRequest  true  "New precipitation value"
// @Success      200   {object}  readingMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /weather/{id}/precipitation [put]
func (h *WeatherHandler) UpdatePrecipitation(c echo.Context) error {
	var req precipitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Precipitation value is required")
	}

	reading, err := h.readings.UpdatePrecipitation(c.Request().Context(), c.Param("id"), *req.Precipitation)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readingMessageResponse{
		Success: true,
		Message: "Precipitation updated successfully",
		Reading: reading,
	})
}

// Delete removes a reading by id.
//
// @Summary      Delete a weather reading
// @Tags         weather
// @Produce      json
// @Param        id   path      string  true  "Reading id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /weather/{id} [delete]
func (h *WeatherHandler) Delete(c echo.Context) error {
	if err := h.readings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Weather reading deleted successfully"})
}

// MaxPrecipitation returns the highest-precipitation reading for a device in
// the trailing five-month window.
//
// @Summary      Max precipitation for a device, trailing window
// @Tags         weather
// @Produce      json
// @Param        deviceName  path      string  true  "Device name"
// @Success      200         {object}  dataResponse
// @Failure      404         {object}  map[string]string
// @Router       /weather/{deviceName}/max-precipitation [get]
func (h *WeatherHandler) MaxPrecipitation(c echo.Context) error {
	result, err := h.readings.MaxPrecipitation(c.Request().Context(), c.Param("deviceName"))
	if err != nil {
		return err
	}

	metrics.ReadingQueriesTotal.WithLabelValues("max_precipitation").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: maxPrecipitationData{
		DeviceName:    result.DeviceName,
		Precipitation: result.Precipitation,
		Time:          result.Time,
	}})
}

// MaxTemperature returns the hottest reading across all devices in an
// explicit date range.
//
// @Summary      Max temperature across devices, date range
// @Tags         weather
// @Produce      json
// @Param        startDate  query     string  true  "Range start"
// @Param        endDate    query     string  true  "Range end"
// @Success      200        {object}  dataResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /weather/max-temperature [get]
func (h *WeatherHandler) MaxTemperature(c echo.Context) error {
	result, err := h.readings.MaxTemperature(c.Request().Context(),
		c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return err
	}

	metrics.ReadingQueriesTotal.WithLabelValues("max_temperature").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: maxTemperatureData{
		DeviceName:  result.DeviceName,
		Temperature: result.Temperature,
		Time:        result.Time,
	}})
}

// StationAt returns the reading matching a device and exact timestamp.
//
// @Summary      Exact station + timestamp lookup
// @Tags         weather
// @Produce      json
// @Param        deviceName  path      string  true  "Device name"
// @Param        time        path      string  true  "Exact observation timestamp"
// @Success      200         {object}  dataResponse
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /weather/{deviceName}/{time} [get]
func (h *WeatherHandler) StationAt(c echo.Context) error {
	result, err := h.readings.StationAt(c.Request().Context(),
		c.Param("deviceName"), c.Param("time"))
	if err != nil {
		return err
	}

	metrics.ReadingQueriesTotal.WithLabelValues("station_at").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: stationReadingData{
		DeviceName:          result.DeviceName,
		Temperature:         result.Temperature,
		AtmosphericPressure: result.AtmosphericPressure,
		SolarRadiation:      result.SolarRadiation,
		Precipitation:       result.Precipitation,
		VaporPressure:       result.VaporPressure,
		Humidity:            result.Humidity,
		MaxWindSpeed:        result.MaxWindSpeed,
		WindDirection:       result.WindDirection,
		Time:                result.Time,
	}})
}

// HumidityWindow returns up to ten readings in a date range, oldest first.
//
// @Summary      Humidity/precipitation range scan, capped at 10
// @Tags         weather
// @Produce      json
// @Param        startDate  query     string  true  "Range start"
// @Param        endDate    query     string  true  "Range end"
// @Success      200        {object}  dataResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /weather/temperature-humidity [get]
func (h *WeatherHandler) HumidityWindow(c echo.Context) error {
	results, err := h.readings.HumidityWindow(c.Request().Context(),
		c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return err
	}

	data := make([]rangeReadingData, 0, len(results))
	for _, r := range results {
		data = append(data, rangeReadingData{
			DeviceName:    r.DeviceName,
			Temperature:   r.Temperature,
			Humidity:      r.Humidity,
			Precipitation: r.Precipitation,
			Time:          r.Time,
		})
	}

	metrics.ReadingQueriesTotal.WithLabelValues("humidity_window").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: data})
}
