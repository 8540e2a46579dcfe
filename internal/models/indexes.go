package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// None of these are unique: email uniqueness is left to callers.
var collectionIndexes = map[string][]mongo.IndexModel{
	UsuariosColName: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email_idx")},
	},
	EventosColName: {
		{Keys: bson.D{{Key: "anfitrion", Value: 1}, {Key: "inicio", Value: 1}}, Options: options.Index().SetName("anfitrion_inicio_idx")},
		{Keys: bson.D{{Key: "invitados.email", Value: 1}}, Options: options.Index().SetName("invitados_email_idx")},
	},
	EventosGeoColName: {
		{Keys: bson.D{{Key: "lat", Value: 1}, {Key: "lon", Value: 1}}, Options: options.Index().SetName("lat_lon_idx")},
	},
	ClientesColName: {
		{Keys: bson.D{{Key: "token", Value: 1}, {Key: "timestamp", Value: -1}}, Options: options.Index().SetName("token_timestamp_idx")},
		{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetName("google_id_idx")},
	},
}

// EnsureIndexes creates the lookup indexes for the given collections.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context, collections ...string) error {
	for _, name := range collections {
		models, ok := collectionIndexes[name]
		if !ok {
			continue
		}
		col, err := mdb.GetCollection(name)
		if err != nil {
			return fmt.Errorf("error getting collection: %w", err)
		}
		if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", name, err)
		}
	}
	return nil
}
