package models

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usuario holds its contacts as plain emails; they are resolved at lookup time.
type Usuario struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Nombre    string             `bson:"nombre" json:"nombre" validate:"required"`
	Contactos []string           `bson:"contactos" json:"contactos"`
}

var UsuarioQuerySpec = QuerySpec{
	Filters: map[string]FieldKind{
		"email":  FieldString,
		"nombre": FieldString,
	},
	Sorts: []string{"email", "nombre"},
}

type UsuarioRepo interface {
	ListUsuarios(ctx context.Context, q Query) ([]*Usuario, error)
	GetUsuarioByID(ctx context.Context, id string) (*Usuario, error)
	GetUsuarioByEmail(ctx context.Context, email string) (*Usuario, error)
	CreateUsuario(ctx context.Context, u *Usuario) (string, error)
	UpdateUsuario(ctx context.Context, id string, set bson.M) (*UpdateResult, error)
	DeleteUsuario(ctx context.Context, id string) (int64, error)
	AddContacto(ctx context.Context, id, email string) (*UpdateResult, error)
	RemoveContacto(ctx context.Context, id, email string) (*UpdateResult, error)
	SearchContactos(ctx context.Context, emails []string, nombre string) ([]*Usuario, error)
}

func (mdb *MongodbRepo) ListUsuarios(ctx context.Context, q Query) ([]*Usuario, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return findAll[Usuario](ctx, col, q.Filter, q.FindOptions())
}

func (mdb *MongodbRepo) GetUsuarioByID(ctx context.Context, id string) (*Usuario, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return findByID[Usuario](ctx, col, id, "usuario")
}

func (mdb *MongodbRepo) GetUsuarioByEmail(ctx context.Context, email string) (*Usuario, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return findOne[Usuario](ctx, col, bson.M{"email": bson.M{"$eq": email}}, "usuario")
}

func (mdb *MongodbRepo) CreateUsuario(ctx context.Context, u *Usuario) (string, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return "", err
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Contactos == nil {
		u.Contactos = []string{}
	}
	res, err := col.InsertOne(ctx, u)
	if err != nil {
		return "", fmt.Errorf("error inserting usuario: %w", err)
	}
	return insertedID(res), nil
}

func (mdb *MongodbRepo) UpdateUsuario(ctx context.Context, id string, set bson.M) (*UpdateResult, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$set": set})
}

func (mdb *MongodbRepo) DeleteUsuario(ctx context.Context, id string) (int64, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return 0, err
	}
	return deleteByID(ctx, col, id)
}

func (mdb *MongodbRepo) AddContacto(ctx context.Context, id, email string) (*UpdateResult, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$push": bson.M{"contactos": email}})
}

func (mdb *MongodbRepo) RemoveContacto(ctx context.Context, id, email string) (*UpdateResult, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$pull": bson.M{"contactos": email}})
}

// SearchContactos matches users whose email is in emails AND whose nombre
// contains nombre, ignoring case. nombre is matched literally.
func (mdb *MongodbRepo) SearchContactos(ctx context.Context, emails []string, nombre string) ([]*Usuario, error) {
	col, err := mdb.GetCollection(UsuariosColName)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"email":  bson.M{"$in": emails},
		"nombre": primitive.Regex{Pattern: regexp.QuoteMeta(nombre), Options: "i"},
	}
	return findAll[Usuario](ctx, col, filter)
}
