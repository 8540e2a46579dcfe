package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	UsuariosColName   = "usuarios"
	EventosColName    = "eventos"
	EventosGeoColName = "eventos_geo"
	ClientesColName   = "clientes"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(name string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, errors.New("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name), nil
}

// UpdateResult is what partial updates report back to the caller.
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperrors.BadRequest("invalid id %q", id)
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error finding documents in %s: %w", col.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding %s document: %w", col.Name(), err)
		}
		docs = append(docs, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id, resource string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[T](ctx, col, bson.M{"_id": oid}, resource)
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, resource string, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := col.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(resource)
		}
		return nil, fmt.Errorf("error finding %s: %w", resource, err)
	}
	return &doc, nil
}

func updateByID(ctx context.Context, col *mongo.Collection, id string, update bson.M) (*UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("error updating %s: %w", col.Name(), err)
	}
	return &UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("error deleting from %s: %w", col.Name(), err)
	}
	return res.DeletedCount, nil
}
