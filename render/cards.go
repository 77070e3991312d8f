package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"listing-gallery/models"
	"listing-gallery/services"
	"listing-gallery/utils"
)

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

var cardsTemplate = template.Must(template.New("cards").Parse(`{{range .Cards}}
<div class="card">
	<img src="{{.ThumbnailURL}}" alt="{{.Alt}}" class="thumbnail" onerror="this.src={{$.Placeholder}}; this.removeAttribute('alt');">
	<div class="price-tag">{{.PriceTag}}</div>
	<div class="value-indicator" style="color: {{.Color}}" title="{{.Tooltip}}">$</div>
	<div class="card-content">
		<div class="listing-name">{{.Name}}</div>
		<div class="description">{{.Description}}</div>
		<div class="amenities"><strong>Amenities:</strong> {{.Amenities}}</div>
		<div class="host-info">
			<img src="{{.HostPhotoURL}}" alt="{{.HostName}}" class="host-photo" onerror="this.src={{$.Placeholder}}">
			<span class="host-name">Hosted by {{.HostName}}</span>
		</div>
	</div>
</div>
{{- end}}
`))

// Renderer turns scored listings into card markup. It has no side effects
// besides logging recovered amenities failures.
type Renderer struct {
	placeholder string
	logger      *utils.Logger
}

// NewRenderer creates a Renderer whose images fall back to placeholder
func NewRenderer(placeholder string, logger *utils.Logger) *Renderer {
	return &Renderer{placeholder: placeholder, logger: logger}
}

// Cards builds one card per listing, in order
func (r *Renderer) Cards(scored []*models.ScoredListing) []models.Card {
	cards := make([]models.Card, 0, len(scored))
	for _, l := range scored {
		cards = append(cards, r.Card(l))
	}
	return cards
}

// Card builds the view model of one listing
func (r *Renderer) Card(l *models.ScoredListing) models.Card {
	amenities, err := services.SummarizeAmenities(l.Amenities)
	if err != nil {
		r.logger.Warn("Failed to parse amenities for %q: %v", l.Name, err)
	}

	var price string
	if l.Price != nil {
		price = string(*l.Price)
	}

	return models.Card{
		ThumbnailURL: string(l.PictureURL),
		Alt:          string(l.Name),
		PriceTag:     price,
		Color:        Color(l.Hue),
		Tooltip:      Tooltip(l),
		Name:         string(l.Name),
		Description:  lineBreak.ReplaceAllString(string(l.Description), "\n"),
		Amenities:    amenities,
		HostPhotoURL: string(l.HostPictureURL),
		HostName:     string(l.HostName),
	}
}

// Fragment renders the cards as the container's new content
func (r *Renderer) Fragment(cards []models.Card) (template.HTML, error) {
	var buf bytes.Buffer
	err := cardsTemplate.Execute(&buf, struct {
		Placeholder string
		Cards       []models.Card
	}{r.placeholder, cards})
	if err != nil {
		return "", fmt.Errorf("render cards: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Color is the value indicator color for a hue between 0 (red) and 150 (green)
func Color(hue float64) template.CSS {
	return template.CSS(fmt.Sprintf("hsl(%s, 100%%, 40%%)", models.FormatNumber(hue)))
}

// Tooltip explains how a listing's value score was computed
func Tooltip(l *models.ScoredListing) string {
	return fmt.Sprintf("Score: %.5f \nCalculation: %s stars / $%s",
		l.ValScore, models.FormatNumber(l.Rating), models.FormatNumber(l.CleanPrice))
}
