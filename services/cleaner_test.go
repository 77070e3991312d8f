package services

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-gallery/models"
)

func TestCleanPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"$100.00", 100},
		{"$1,234.50", 1234.5},
		{"  $12abc", 12},
		{"$1e3", 1000},
		{"$0.00", 0},
		{"-$5", -5},
		{".5", 0.5},
		{"$1,000,000", 1000000},
	}
	for _, tc := range cases {
		got, ok := CleanPrice(tc.raw)
		assert.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestCleanPriceUnparseable(t *testing.T) {
	for _, raw := range []string{"", "$", "free", "€100", "$,"} {
		got, ok := CleanPrice(raw)
		assert.False(t, ok, raw)
		assert.True(t, math.IsNaN(got), raw)
	}
}

func TestCleanPriceInfinity(t *testing.T) {
	got, ok := CleanPrice("Infinity")
	require.True(t, ok)
	assert.True(t, math.IsInf(got, 1))
}

func TestParseRating(t *testing.T) {
	cases := map[string]float64{
		``:        0,
		`null`:    0,
		`false`:   0,
		`0`:       0,
		`""`:      0,
		`4.8`:     4.8,
		`95`:      95,
		`"4.5"`:   4.5,
		`"great"`: 0,
		`[1]`:     0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseRating(json.RawMessage(raw)), "rating %s", raw)
	}
}

func TestValueScore(t *testing.T) {
	assert.Equal(t, 0.05, ValueScore(5, 100))
	assert.Equal(t, 0.08, ValueScore(4, 50))
	assert.Zero(t, ValueScore(0, 100))
	assert.Zero(t, ValueScore(5, 0))
	assert.Zero(t, ValueScore(5, -10))
	assert.Zero(t, ValueScore(-1, 10))
	assert.Zero(t, ValueScore(5, math.NaN()))
	assert.Zero(t, ValueScore(5, math.Inf(1)))
	assert.Zero(t, ValueScore(math.Inf(1), 10))
}

func text(s string) *models.Text {
	t := models.Text(s)
	return &t
}

func TestSummarizeAmenitiesFourEntriesNoEllipsis(t *testing.T) {
	got, err := SummarizeAmenities(text(`["wifi","pool","gym","parking"]`))
	require.NoError(t, err)
	assert.Equal(t, "wifi, pool, gym", got)
}

func TestSummarizeAmenitiesFiveEntriesEllipsis(t *testing.T) {
	got, err := SummarizeAmenities(text(`["wifi","pool","gym","parking","kitchen"]`))
	require.NoError(t, err)
	assert.Equal(t, "wifi, pool, gym...", got)
}

func TestSummarizeAmenitiesShortLists(t *testing.T) {
	got, err := SummarizeAmenities(text(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = SummarizeAmenities(text(`["wifi", null, 2]`))
	require.NoError(t, err)
	assert.Equal(t, "wifi, , 2", got)
}

func TestSummarizeAmenitiesFailures(t *testing.T) {
	got, err := SummarizeAmenities(text("not json"))
	assert.Error(t, err)
	assert.Equal(t, NoAmenities, got)

	got, err = SummarizeAmenities(text(`"wifi"`))
	assert.True(t, errors.Is(err, ErrAmenitiesNotList))
	assert.Equal(t, NoAmenities, got)

	got, err = SummarizeAmenities(text(`null`))
	assert.True(t, errors.Is(err, ErrAmenitiesNotList))
	assert.Equal(t, NoAmenities, got)

	got, err = SummarizeAmenities(nil)
	assert.True(t, errors.Is(err, ErrAmenitiesNotList))
	assert.Equal(t, NoAmenities, got)
}
