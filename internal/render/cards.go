// Package render produces the listing card markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/valencia-move/listings-backend/internal/models"
)

// EmptyMessage is shown in place of the card list when nothing matches
const EmptyMessage = "No apartments found matching your criteria"

var funcs = template.FuncMap{
	"price": Price,
	"area":  AreaLabel,
	"count": Count,
	"size":  Size,
}

var cardsTemplate = template.Must(template.New("cards").Funcs(funcs).Parse(`
{{- define "card" -}}
<article class="listing-card" data-listing-id="{{.ID}}">
  {{- if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" class="listing-image">{{end}}
  <div class="listing-price">{{price .Price}}</div>
  <h3 class="listing-title">{{.Title}}</h3>
  <div class="listing-area">{{area .Area}}</div>
  <ul class="listing-stats">
    <li class="listing-beds">{{count .Beds "Bed"}}</li>
    <li class="listing-baths">{{count .Baths "Bath"}}</li>
    <li class="listing-size">{{size .Size}}</li>
  </ul>
  <div class="listing-features">
    {{- range .Features}}<span class="listing-feature">{{.}}</span>{{end -}}
  </div>
</article>
{{- end -}}
{{- if .}}{{range .}}{{template "card" .}}
{{end}}{{else}}<div class="listing-empty">` + EmptyMessage + `</div>{{end -}}
`))

// CardsHTML renders one card per listing, or the empty state when there are none
func CardsHTML(listings []models.Listing) (template.HTML, error) {
	var buf bytes.Buffer
	if err := cardsTemplate.Execute(&buf, listings); err != nil {
		return "", fmt.Errorf("failed to render cards: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Cards replaces the container content with the rendered card list.
// A nil container means the card list is not on this page and is skipped.
func Cards(container Container, listings []models.Listing) error {
	if container == nil {
		return nil
	}
	html, err := CardsHTML(listings)
	if err != nil {
		return err
	}
	container.Replace(html)
	return nil
}

// Details renders the plain-text detail view of a listing
func Details(l models.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", l.Title)
	fmt.Fprintf(&b, "Price: %s\n", Price(l.Price))
	fmt.Fprintf(&b, "Area: %s\n", AreaLabel(l.Area))
	fmt.Fprintf(&b, "Size: %s\n", Size(l.Size))
	fmt.Fprintf(&b, "Bedrooms: %d\n", l.Beds)
	fmt.Fprintf(&b, "Bathrooms: %d\n", l.Baths)
	fmt.Fprintf(&b, "Features: %s\n", strings.Join(l.Features, ", "))
	if l.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Description)
	}
	return b.String()
}
