package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldDate
)

// QuerySpec lists the query parameters a collection accepts as equality
// filters and the fields it may be sorted by. Anything else in the query
// string is ignored, and values are always compared with $eq.
type QuerySpec struct {
	Filters map[string]FieldKind
	Sorts   []string
}

// Query is a validated filter and sort ready for the store.
type Query struct {
	Filter bson.D
	Sort   bson.D
}

func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	return opts
}

func (s QuerySpec) Build(values url.Values) (Query, error) {
	q := Query{Filter: bson.D{}}

	for field, kind := range s.Filters {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			continue
		}
		var value any = raw
		switch kind {
		case FieldNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Query{}, apperrors.BadRequest("%s must be a number", field)
			}
			value = n
		case FieldDate:
			t, err := ParseDate(raw)
			if err != nil {
				return Query{}, apperrors.BadRequest("%s must be a date", field)
			}
			value = t
		}
		q.Filter = append(q.Filter, bson.E{Key: field, Value: bson.D{{Key: "$eq", Value: value}}})
	}
	// map iteration is random
	sort.Slice(q.Filter, func(i, j int) bool { return q.Filter[i].Key < q.Filter[j].Key })

	orderBy := strings.TrimSpace(values.Get("orderBy"))
	if orderBy == "" {
		return q, nil
	}
	if !s.sortable(orderBy) {
		return Query{}, apperrors.BadRequest("cannot sort by %q", orderBy)
	}
	direction := 1
	switch strings.ToLower(strings.TrimSpace(values.Get("order"))) {
	case "", "asc":
	case "desc":
		direction = -1
	default:
		return Query{}, apperrors.BadRequest("order must be asc or desc")
	}
	q.Sort = bson.D{{Key: orderBy, Value: direction}}

	return q, nil
}

func (s QuerySpec) sortable(field string) bool {
	for _, f := range s.Sorts {
		if f == field {
			return true
		}
	}
	return false
}

