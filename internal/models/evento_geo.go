package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventoGeo is the geocoded event served by the clientes service. Lat and
// Lon are derived from Lugar on the server.
type EventoGeo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Lugar       string             `bson:"lugar" json:"lugar"`
	Lat         float64            `bson:"lat" json:"lat"`
	Lon         float64            `bson:"lon" json:"lon"`
	Organizador string             `bson:"organizador" json:"organizador"`
	Imagen      string             `bson:"imagen,omitempty" json:"imagen,omitempty"`
}

var EventoGeoQuerySpec = QuerySpec{
	Filters: map[string]FieldKind{
		"nombre":      FieldString,
		"lugar":       FieldString,
		"organizador": FieldString,
		"timestamp":   FieldDate,
	},
	Sorts: []string{"timestamp", "nombre", "lugar", "organizador"},
}

type EventoGeoRepo interface {
	ListEventosGeo(ctx context.Context, q Query) ([]*EventoGeo, error)
	ListEventosGeoWithin(ctx context.Context, box BoundingBox) ([]*EventoGeo, error)
	GetEventoGeoByID(ctx context.Context, id string) (*EventoGeo, error)
	CreateEventoGeo(ctx context.Context, e *EventoGeo) (string, error)
	UpdateEventoGeo(ctx context.Context, id string, set bson.M) (*UpdateResult, error)
	DeleteEventoGeo(ctx context.Context, id string) (int64, error)
}

func (mdb *MongodbRepo) ListEventosGeo(ctx context.Context, q Query) ([]*EventoGeo, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return nil, err
	}
	return findAll[EventoGeo](ctx, col, q.Filter, q.FindOptions())
}

// ListEventosGeoWithin applies the box with inclusive bounds on both axes.
func (mdb *MongodbRepo) ListEventosGeoWithin(ctx context.Context, box BoundingBox) ([]*EventoGeo, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"lat": bson.M{"$gte": box.MinLat, "$lte": box.MaxLat},
		"lon": bson.M{"$gte": box.MinLon, "$lte": box.MaxLon},
	}
	return findAll[EventoGeo](ctx, col, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
}

func (mdb *MongodbRepo) GetEventoGeoByID(ctx context.Context, id string) (*EventoGeo, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return nil, err
	}
	return findByID[EventoGeo](ctx, col, id, "evento")
}

func (mdb *MongodbRepo) CreateEventoGeo(ctx context.Context, e *EventoGeo) (string, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return "", err
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	res, err := col.InsertOne(ctx, e)
	if err != nil {
		return "", fmt.Errorf("error inserting evento: %w", err)
	}
	return insertedID(res), nil
}

func (mdb *MongodbRepo) UpdateEventoGeo(ctx context.Context, id string, set bson.M) (*UpdateResult, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$set": set})
}

func (mdb *MongodbRepo) DeleteEventoGeo(ctx context.Context, id string) (int64, error) {
	col, err := mdb.GetCollection(EventosGeoColName)
	if err != nil {
		return 0, err
	}
	return deleteByID(ctx, col, id)
}
