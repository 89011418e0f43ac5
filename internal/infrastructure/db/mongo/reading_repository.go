package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

const readingsCollection = "weather_readings"

// ReadingRepository persists weather readings. Documents use canonical
// snake_case field names; presentation labels live in domain.FieldLabels.
type ReadingRepository struct {
	coll *mongo.Collection
}

func NewReadingRepository(db *mongo.Database) *ReadingRepository {
	return &ReadingRepository{coll: db.Collection(readingsCollection)}
}

type readingDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	DeviceName          string             `bson:"device_name"`
	Precipitation       float64            `bson:"precipitation"`
	Time                time.Time          `bson:"time"`
	Latitude            float64            `bson:"latitude"`
	Longitude           float64            `bson:"longitude"`
	Temperature         float64            `bson:"temperature"`
	AtmosphericPressure float64            `bson:"atmospheric_pressure"`
	MaxWindSpeed        float64            `bson:"max_wind_speed"`
	SolarRadiation      float64            `bson:"solar_radiation"`
	VaporPressure       float64            `bson:"vapor_pressure"`
	Humidity            float64            `bson:"humidity"`
	WindDirection       float64            `bson:"wind_direction"`
}

func toDoc(r *domain.WeatherReading) readingDoc {
	return readingDoc{
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

func (d *readingDoc) toDomain() *domain.WeatherReading {
	return &domain.WeatherReading{
		ID:                  d.ID.Hex(),
		DeviceName:          d.DeviceName,
		Precipitation:       d.Precipitation,
		Time:                d.Time,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		Temperature:         d.Temperature,
		AtmosphericPressure: d.AtmosphericPressure,
		MaxWindSpeed:        d.MaxWindSpeed,
		SolarRadiation:      d.SolarRadiation,
		VaporPressure:       d.VaporPressure,
		Humidity:            d.Humidity,
		WindDirection:       d.WindDirection,
	}
}

// EnsureIndexes creates the compound indexes backing the aggregate queries.
func (r *ReadingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "device_name", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "temperature", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "humidity", Value: 1}, {Key: "precipitation", Value: 1}, {Key: "time", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ReadingRepository) Insert(ctx context.Context, reading *domain.WeatherReading) (*domain.WeatherReading, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(reading))
	if err != nil {
		return nil, fmt.Errorf("insert reading: %w", err)
	}

	created := *reading
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReadingRepository) InsertMany(ctx context.Context, readings []domain.WeatherReading) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(readings))
	for i := range readings {
		docs[i] = toDoc(&readings[i])
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert readings: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *ReadingRepository) FindByID(ctx context.Context, id string) (*domain.WeatherReading, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc readingDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("find reading: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReadingRepository) UpdateByID(ctx context.Context, id string, upd ports.ReadingUpdate) (*domain.WeatherReading, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := readingUpdateSet(upd)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc readingDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("update reading: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReadingRepository) UpdatePrecipitation(ctx context.Context, id string, value float64) (*domain.WeatherReading, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc readingDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"precipitation": value}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("update precipitation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReadingRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReadingNotFound
	}
	return nil
}

// MaxPrecipitationSince sorts by precipitation descending with most-recent
// time as the deterministic tie-break.
func (r *ReadingRepository) MaxPrecipitationSince(ctx context.Context, deviceName string, since time.Time) (*ports.PrecipitationMax, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "precipitation", Value: -1}, {Key: "time", Value: -1}}).
		SetProjection(bson.D{
			{Key: "device_name", Value: 1},
			{Key: "precipitation", Value: 1},
			{Key: "time", Value: 1},
		})

	var doc readingDoc
	err := r.coll.FindOne(ctx, bson.M{
		"device_name": deviceName,
		"time":        bson.M{"$gte": since},
	}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("max precipitation: %w", err)
	}

	return &ports.PrecipitationMax{
		DeviceName:    doc.DeviceName,
		Precipitation: doc.Precipitation,
		Time:          doc.Time,
	}, nil
}

// MaxTemperatureBetween sorts by temperature descending with most-recent
// time as the deterministic tie-break.
func (r *ReadingRepository) MaxTemperatureBetween(ctx context.Context, start, end time.Time) (*ports.TemperatureMax, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "temperature", Value: -1}, {Key: "time", Value: -1}}).
		SetProjection(bson.D{
			{Key: "device_name", Value: 1},
			{Key: "temperature", Value: 1},
			{Key: "time", Value: 1},
		})

	var doc readingDoc
	err := r.coll.FindOne(ctx, bson.M{
		"time": bson.M{"$gte": start, "$lte": end},
	}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("max temperature: %w", err)
	}

	return &ports.TemperatureMax{
		DeviceName:  doc.DeviceName,
		Temperature: doc.Temperature,
		Time:        doc.Time,
	}, nil
}

// FindByStationAndTime requires an exact timestamp match at stored precision.
func (r *ReadingRepository) FindByStationAndTime(ctx context.Context, deviceName string, at time.Time) (*ports.StationReading, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.D{
		{Key: "device_name", Value: 1},
		{Key: "temperature", Value: 1},
		{Key: "atmospheric_pressure", Value: 1},
		{Key: "solar_radiation", Value: 1},
		{Key: "precipitation", Value: 1},
		{Key: "vapor_pressure", Value: 1},
		{Key: "humidity", Value: 1},
		{Key: "max_wind_speed", Value: 1},
		{Key: "wind_direction", Value: 1},
		{Key: "time", Value: 1},
	})

	var doc readingDoc
	err := r.coll.FindOne(ctx, bson.M{
		"device_name": deviceName,
		"time":        at,
	}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("find by station and time: %w", err)
	}

	return &ports.StationReading{
		DeviceName:          doc.DeviceName,
		Temperature:         doc.Temperature,
		AtmosphericPressure: doc.AtmosphericPressure,
		SolarRadiation:      doc.SolarRadiation,
		Precipitation:       doc.Precipitation,
		VaporPressure:       doc.VaporPressure,
		Humidity:            doc.Humidity,
		MaxWindSpeed:        doc.MaxWindSpeed,
		WindDirection:       doc.WindDirection,
		Time:                doc.Time,
	}, nil
}

func (r *ReadingRepository) FindByTimeRange(ctx context.Context, start, end time.Time, limit int64) ([]ports.RangeReading, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.D{
			{Key: "device_name", Value: 1},
			{Key: "temperature", Value: 1},
			{Key: "humidity", Value: 1},
			{Key: "precipitation", Value: 1},
			{Key: "time", Value: 1},
		})

	cursor, err := r.coll.Find(ctx, bson.M{
		"time": bson.M{"$gte": start, "$lte": end},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("range scan: %w", err)
	}
	defer cursor.Close(ctx)

	var results []ports.RangeReading
	for cursor.Next(ctx) {
		var doc readingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reading: %w", err)
		}
		results = append(results, ports.RangeReading{
			DeviceName:    doc.DeviceName,
			Temperature:   doc.Temperature,
			Humidity:      doc.Humidity,
			Precipitation: doc.Precipitation,
			Time:          doc.Time,
		})
	}
	return results, cursor.Err()
}

func readingUpdateSet(upd ports.ReadingUpdate) bson.M {
	set := bson.M{}
	if upd.DeviceName != nil {
		set["device_name"] = *upd.DeviceName
	}
	if upd.Precipitation != nil {
		set["precipitation"] = *upd.Precipitation
	}
	if upd.Time != nil {
		set["time"] = *upd.Time
	}
	if upd.Latitude != nil {
		set["latitude"] = *upd.Latitude
	}
	if upd.Longitude != nil {
		set["longitude"] = *upd.Longitude
	}
	if upd.Temperature != nil {
		set["temperature"] = *upd.Temperature
	}
	if upd.AtmosphericPressure != nil {
		set["atmospheric_pressure"] = *upd.AtmosphericPressure
	}
	if upd.MaxWindSpeed != nil {
		set["max_wind_speed"] = *upd.MaxWindSpeed
	}
	if upd.SolarRadiation != nil {
		set["solar_radiation"] = *upd.SolarRadiation
	}
	if upd.VaporPressure != nil {
		set["vapor_pressure"] = *upd.VaporPressure
	}
	if upd.Humidity != nil {
		set["humidity"] = *upd.Humidity
	}
	if upd.WindDirection != nil {
		set["wind_direction"] = *upd.WindDirection
	}
	return set
}
