package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-gallery/models"
	"listing-gallery/utils"
)

func ptr(s string) *models.Text {
	t := models.Text(s)
	return &t
}

func scoredListing() *models.ScoredListing {
	return &models.ScoredListing{
		Listing: models.Listing{
			Name:           "Sunny Loft",
			Description:    "Bright room<br />Near the park",
			Price:          ptr("$50.00"),
			ReviewScore:    json.RawMessage("4"),
			Amenities:      ptr(`["Wifi","Kitchen","Heating","Washer","Dryer"]`),
			PictureURL:     "https://example.com/loft.jpg",
			HostName:       "Sam",
			HostPictureURL: "https://example.com/sam.jpg",
		},
		Rating:     4,
		CleanPrice: 50,
		ValScore:   0.08,
		Normalized: 1,
		Hue:        150,
	}
}

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	return NewRenderer("IMG_NA.png", utils.NewLoggerTo(buf, "debug"))
}

func TestTooltip(t *testing.T) {
	assert.Equal(t, "Score: 0.08000 \nCalculation: 4 stars / $50", Tooltip(scoredListing()))

	unparsed := &models.ScoredListing{Rating: 4.8, CleanPrice: math.NaN()}
	assert.Equal(t, "Score: 0.00000 \nCalculation: 4.8 stars / $NaN", Tooltip(unparsed))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "hsl(0, 100%, 40%)", string(Color(0)))
	assert.Equal(t, "hsl(150, 100%, 40%)", string(Color(150)))
	assert.Equal(t, "hsl(75, 100%, 40%)", string(Color(75)))
}

func TestCard(t *testing.T) {
	var logs bytes.Buffer
	card := newTestRenderer(&logs).Card(scoredListing())

	assert.Equal(t, "https://example.com/loft.jpg", card.ThumbnailURL)
	assert.Equal(t, "Sunny Loft", card.Alt)
	assert.Equal(t, "$50.00", card.PriceTag)
	assert.Equal(t, "hsl(150, 100%, 40%)", string(card.Color))
	assert.Equal(t, "Bright room\nNear the park", card.Description)
	assert.Equal(t, "Wifi, Kitchen, Heating...", card.Amenities)
	assert.Equal(t, "Sam", card.HostName)
	assert.Empty(t, logs.String())
}

func TestCardBadAmenitiesWarnsAndContinues(t *testing.T) {
	var logs bytes.Buffer
	l := scoredListing()
	l.Amenities = ptr("not json")

	card := newTestRenderer(&logs).Card(l)

	assert.Equal(t, "No amenities", card.Amenities)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "Failed to parse amenities")
}

func TestFragmentKeepsOrderAndLayout(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(&logs)

	first := scoredListing()
	second := scoredListing()
	second.Name = "Quiet Studio"
	second.Hue = 0

	html, err := r.Fragment(r.Cards([]*models.ScoredListing{first, second}))
	require.NoError(t, err)
	out := string(html)

	assert.Equal(t, 2, strings.Count(out, `<div class="card">`))
	assert.Less(t, strings.Index(out, "Sunny Loft"), strings.Index(out, "Quiet Studio"))
	assert.Contains(t, out, `<div class="price-tag">$50.00</div>`)
	assert.Contains(t, out, `style="color: hsl(150, 100%, 40%)"`)
	assert.Contains(t, out, `style="color: hsl(0, 100%, 40%)"`)
	assert.Contains(t, out, "<strong>Amenities:</strong> Wifi, Kitchen, Heating...")
	assert.Contains(t, out, "Hosted by Sam")
	assert.Contains(t, out, "IMG_NA.png")
	assert.Contains(t, out, "removeAttribute")

	// name/description/amenities/host order inside a card
	card := out[:strings.Index(out, "Quiet Studio")]
	idx := func(s string) int { return strings.Index(card, s) }
	assert.Less(t, idx(`class="thumbnail"`), idx(`class="price-tag"`))
	assert.Less(t, idx(`class="price-tag"`), idx(`class="value-indicator"`))
	assert.Less(t, idx(`class="value-indicator"`), idx(`class="listing-name"`))
	assert.Less(t, idx(`class="description"`), idx(`class="amenities"`))
	assert.Less(t, idx(`class="amenities"`), idx(`class="host-info"`))
}

func TestFragmentEscapesListingText(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(&logs)
	l := scoredListing()
	l.Name = `<script>alert("x")</script>`

	html, err := r.Fragment(r.Cards([]*models.ScoredListing{l}))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestFragmentEmpty(t *testing.T) {
	var logs bytes.Buffer
	html, err := newTestRenderer(&logs).Fragment(nil)
	require.NoError(t, err)
	assert.Equal(t, "", strings.TrimSpace(string(html)))
}
