package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EstadoPendiente = "pendiente"
	EstadoAceptado  = "aceptado"
	EstadoRechazado = "rechazado"
)

// DayMillis is the reschedule unit.
const DayMillis = 86_400_000

// MaxRescheduleDays bounds a single reschedule shift in either direction.
const MaxRescheduleDays = 100_000

type Invitado struct {
	Email  string `bson:"email" json:"email" validate:"required,email"`
	Estado string `bson:"estado" json:"estado" validate:"omitempty,oneof=pendiente aceptado rechazado"`
}

// Evento is the invitation-model event served by the usuarios service.
// Anfitrion and the invitee emails are weak references to Usuario.Email.
type Evento struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Anfitrion   string             `bson:"anfitrion" json:"anfitrion"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Inicio      time.Time          `bson:"inicio" json:"inicio"`
	Duracion    float64            `bson:"duracion" json:"duracion"`
	Invitados   []Invitado         `bson:"invitados" json:"invitados"`
}

// Rescheduled copies e into a new, unsaved event starting dias days later.
func (e *Evento) Rescheduled(dias int) *Evento {
	invitados := make([]Invitado, len(e.Invitados))
	copy(invitados, e.Invitados)
	return &Evento{
		Anfitrion:   e.Anfitrion,
		Descripcion: e.Descripcion,
		Inicio:      time.UnixMilli(e.Inicio.UnixMilli() + int64(dias)*DayMillis).In(e.Inicio.Location()),
		Duracion:    e.Duracion,
		Invitados:   invitados,
	}
}

var EventoQuerySpec = QuerySpec{
	Filters: map[string]FieldKind{
		"anfitrion":   FieldString,
		"descripcion": FieldString,
		"duracion":    FieldNumber,
		"inicio":      FieldDate,
	},
	Sorts: []string{"inicio", "anfitrion", "duracion", "descripcion"},
}

type EventoRepo interface {
	ListEventos(ctx context.Context, q Query) ([]*Evento, error)
	GetEventoByID(ctx context.Context, id string) (*Evento, error)
	CreateEvento(ctx context.Context, e *Evento) (string, error)
	UpdateEvento(ctx context.Context, id string, set bson.M) (*UpdateResult, error)
	DeleteEvento(ctx context.Context, id string) (int64, error)
	AddInvitado(ctx context.Context, id string, inv Invitado) (*UpdateResult, error)
	Agenda(ctx context.Context, email string) ([]*Evento, error)
}

func (mdb *MongodbRepo) ListEventos(ctx context.Context, q Query) ([]*Evento, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return nil, err
	}
	return findAll[Evento](ctx, col, q.Filter, q.FindOptions())
}

func (mdb *MongodbRepo) GetEventoByID(ctx context.Context, id string) (*Evento, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return nil, err
	}
	return findByID[Evento](ctx, col, id, "evento")
}

func (mdb *MongodbRepo) CreateEvento(ctx context.Context, e *Evento) (string, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return "", err
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Invitados == nil {
		e.Invitados = []Invitado{}
	}
	res, err := col.InsertOne(ctx, e)
	if err != nil {
		return "", fmt.Errorf("error inserting evento: %w", err)
	}
	return insertedID(res), nil
}

func (mdb *MongodbRepo) UpdateEvento(ctx context.Context, id string, set bson.M) (*UpdateResult, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$set": set})
}

func (mdb *MongodbRepo) DeleteEvento(ctx context.Context, id string) (int64, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return 0, err
	}
	return deleteByID(ctx, col, id)
}

func (mdb *MongodbRepo) AddInvitado(ctx context.Context, id string, inv Invitado) (*UpdateResult, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return nil, err
	}
	return updateByID(ctx, col, id, bson.M{"$push": bson.M{"invitados": inv}})
}

// Agenda returns the events email hosts or is invited to, earliest first.
func (mdb *MongodbRepo) Agenda(ctx context.Context, email string) ([]*Evento, error) {
	col, err := mdb.GetCollection(EventosColName)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"anfitrion": bson.M{"$eq": email}},
			bson.M{"invitados.email": bson.M{"$eq": email}},
		},
	}
	return findAll[Evento](ctx, col, filter, options.Find().SetSort(bson.D{{Key: "inicio", Value: 1}}))
}
