package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string           `json:"title" validate:"required,max=10"`
	Date     string           `json:"date" validate:"required,iso8601"`
	Capacity *int             `json:"capacity" validate:"required,min=1"`
	Price    *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Note     *string          `json:"note,omitempty" validate:"omitempty,min=1"`
}

func intPtr(v int) *int { return &v }

func TestStruct_Valid(t *testing.T) {
	price := decimal.NewFromInt(20)
	errs := New().Struct(sample{Title: "Test", Date: "2030-01-01T00:00:00Z", Capacity: intPtr(1), Price: &price})
	assert.Empty(t, errs)
}

func TestStruct_ReportsJSONNamesAndRules(t *testing.T) {
	price := decimal.RequireFromString("-0.01")
	empty := ""
	errs := New().Struct(sample{Date: "01/02/2030", Capacity: intPtr(0), Price: &price, Note: &empty})

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Rule
		assert.NotEmpty(t, e.Message)
	}
	assert.Equal(t, map[string]string{
		"title":    "required",
		"date":     "iso8601",
		"capacity": "min",
		"price":    "gte",
		"note":     "min",
	}, got)
}

func TestStruct_MissingPointers(t *testing.T) {
	errs := New().Struct(sample{Title: "Test", Date: "2030-01-01"})

	require.Len(t, errs, 2)
	assert.Equal(t, domain.FieldError{Field: "capacity", Rule: "required", Message: "capacity is required"}, errs[0])
	assert.Equal(t, "price", errs[1].Field)
}

func TestParseISO8601(t *testing.T) {
	want := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2030-01-01T00:00:00Z", "2030-01-01T02:00:00+02:00", "2030-01-01", "2030-01-01T00:00"} {
		got, err := ParseISO8601(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseISO8601("next tuesday")
	assert.Error(t, err)
}

func TestDecodeError(t *testing.T) {
	var dst sample

	err := json.NewDecoder(strings.NewReader(`{"capacity":"many"}`)).Decode(&dst)
	errs := DecodeError(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "capacity", errs[0].Field)
	assert.Equal(t, "type", errs[0].Rule)

	err = json.NewDecoder(strings.NewReader(`{"title":`)).Decode(&dst)
	errs = DecodeError(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "json", errs[0].Rule)

	err = json.NewDecoder(strings.NewReader(``)).Decode(&dst)
	errs = DecodeError(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Rule)
}
