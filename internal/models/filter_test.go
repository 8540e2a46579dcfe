package models

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestQuerySpec_BuildEqualityFilters(t *testing.T) {
	values := url.Values{
		"nombre":  {"Ana"},
		"email":   {"ana@uma.es"},
		"unknown": {"ignored"},
	}

	q, err := UsuarioQuerySpec.Build(values)
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "email", Value: bson.D{{Key: "$eq", Value: "ana@uma.es"}}},
		{Key: "nombre", Value: bson.D{{Key: "$eq", Value: "Ana"}}},
	}, q.Filter)
	assert.Empty(t, q.Sort)
}

func TestQuerySpec_OperatorValuesStayLiteral(t *testing.T) {
	q, err := UsuarioQuerySpec.Build(url.Values{"email": {`{"$ne": null}`}})
	require.NoError(t, err)

	require.Len(t, q.Filter, 1)
	assert.Equal(t, bson.D{{Key: "$eq", Value: `{"$ne": null}`}}, q.Filter[0].Value)
}

func TestQuerySpec_TypedFilters(t *testing.T) {
	q, err := EventoQuerySpec.Build(url.Values{
		"duracion": {"90"},
		"inicio":   {"2024-03-01T10:00:00Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "duracion", Value: bson.D{{Key: "$eq", Value: 90.0}}},
		{Key: "inicio", Value: bson.D{{Key: "$eq", Value: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}}},
	}, q.Filter)

	_, err = EventoQuerySpec.Build(url.Values{"duracion": {"long"}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestQuerySpec_Sort(t *testing.T) {
	testCases := []struct {
		name    string
		values  url.Values
		want    bson.D
		wantErr bool
	}{
		{"ascending by default", url.Values{"orderBy": {"inicio"}}, bson.D{{Key: "inicio", Value: 1}}, false},
		{"explicit asc", url.Values{"orderBy": {"inicio"}, "order": {"asc"}}, bson.D{{Key: "inicio", Value: 1}}, false},
		{"desc", url.Values{"orderBy": {"anfitrion"}, "order": {"DESC"}}, bson.D{{Key: "anfitrion", Value: -1}}, false},
		{"field not allowed", url.Values{"orderBy": {"$where"}}, nil, true},
		{"bad direction", url.Values{"orderBy": {"inicio"}, "order": {"sideways"}}, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := EventoQuerySpec.Build(tc.values)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperrors.As(err).StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.Sort)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-03-01", "2024-03-01T00:00:00Z", "2024-03-01T01:00:00+01:00", "1709251200000"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestParseDate_EpochRange(t *testing.T) {
	got, err := ParseDate("8640000000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(8640000000000000), got.UnixMilli())

	got, err = ParseDate("-8640000000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(-8640000000000000), got.UnixMilli())

	for _, in := range []string{"8640000000000001", "1e20", "-1e20", "NaN", "Inf", "-Inf"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}

	var body struct {
		A FlexTime `json:"a"`
	}
	assert.Error(t, jsonUnmarshal(`{"a":1e20}`, &body))
}

func TestFlexTime_UnmarshalJSON(t *testing.T) {
	var body struct {
		A FlexTime  `json:"a"`
		B FlexTime  `json:"b"`
		C *FlexTime `json:"c"`
	}
	err := jsonUnmarshal(`{"a":"2024-03-01T10:00:00Z","b":1709287200000,"c":null}`, &body)
	require.NoError(t, err)

	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(body.A.Time))
	assert.True(t, want.Equal(body.B.Time))
	assert.Nil(t, body.C)
}
