package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClienteLoginRecord is a third-party OAuth session. Records are never
// deleted through the API.
type ClienteLoginRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	GoogleID  string             `bson:"googleId" json:"googleId"`
	Token     string             `bson:"token" json:"token"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Exp       time.Time          `bson:"exp" json:"exp"`
}

// Expired reports whether the record's token is no longer valid at now.
func (c *ClienteLoginRecord) Expired(now time.Time) bool {
	return !now.Before(c.Exp)
}

var ClienteQuerySpec = QuerySpec{
	Filters: map[string]FieldKind{
		"email":    FieldString,
		"googleId": FieldString,
		"token":    FieldString,
	},
	Sorts: []string{"timestamp", "exp", "email"},
}

type ClienteRepo interface {
	ListClientes(ctx context.Context, q Query) ([]*ClienteLoginRecord, error)
	GetClienteByID(ctx context.Context, id string) (*ClienteLoginRecord, error)
	GetClienteByToken(ctx context.Context, token string) (*ClienteLoginRecord, error)
	CreateCliente(ctx context.Context, c *ClienteLoginRecord) (string, error)
	UpdateClienteByGoogleID(ctx context.Context, googleID string, set bson.M) (*UpdateResult, error)
}

func (mdb *MongodbRepo) ListClientes(ctx context.Context, q Query) ([]*ClienteLoginRecord, error) {
	col, err := mdb.GetCollection(ClientesColName)
	if err != nil {
		return nil, err
	}
	return findAll[ClienteLoginRecord](ctx, col, q.Filter, q.FindOptions())
}

func (mdb *MongodbRepo) GetClienteByID(ctx context.Context, id string) (*ClienteLoginRecord, error) {
	col, err := mdb.GetCollection(ClientesColName)
	if err != nil {
		return nil, err
	}
	return findByID[ClienteLoginRecord](ctx, col, id, "login record")
}

// GetClienteByToken returns the newest record carrying token.
func (mdb *MongodbRepo) GetClienteByToken(ctx context.Context, token string) (*ClienteLoginRecord, error) {
	col, err := mdb.GetCollection(ClientesColName)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return findOne[ClienteLoginRecord](ctx, col, bson.M{"token": bson.M{"$eq": token}}, "token", opts)
}

func (mdb *MongodbRepo) CreateCliente(ctx context.Context, c *ClienteLoginRecord) (string, error) {
	col, err := mdb.GetCollection(ClientesColName)
	if err != nil {
		return "", err
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	res, err := col.InsertOne(ctx, c)
	if err != nil {
		return "", fmt.Errorf("error inserting login record: %w", err)
	}
	return insertedID(res), nil
}

func (mdb *MongodbRepo) UpdateClienteByGoogleID(ctx context.Context, googleID string, set bson.M) (*UpdateResult, error) {
	col, err := mdb.GetCollection(ClientesColName)
	if err != nil {
		return nil, err
	}
	res, err := col.UpdateOne(ctx, bson.M{"googleId": bson.M{"$eq": googleID}}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("error updating login record: %w", err)
	}
	return &UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}
