package view

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/yuin/goldmark"
)

var (
	descriptionMarkdown = goldmark.New()
	descriptionPolicy   = newDescriptionPolicy()
)

type ProductCard struct {
	ID          string
	Name        string
	Description template.HTML
	ImageURL    string
	Price       string
	Category    string
	Featured    bool
	ButtonLabel string
	ReturnPath  string
}

type CategoryFilter struct {
	Key    string
	Label  string
	Href   string
	Active bool
}

// NewProductCards renders every product as a card. Featured cards carry a
// full "Add to Cart" label; the regular grid uses a compact "+". returnPath
// is where the add-to-cart form sends the visitor back to.
func NewProductCards(products []model.Product, featured bool, returnPath string) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		label := "+"
		if featured {
			label = "Add to Cart"
		}
		cards = append(cards, ProductCard{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: RenderDescription(p.Description),
			ImageURL:    p.ImageURL,
			Price:       FormatPrice(p.Price),
			Category:    p.Category,
			Featured:    featured,
			ButtonLabel: label,
			ReturnPath:  returnPath,
		})
	}
	return cards
}

// NewCategoryFilters returns the "all" filter followed by one filter per
// category, with active marking the selected one.
func NewCategoryFilters(categories []string, active string) []CategoryFilter {
	if active == "" {
		active = model.CategoryAll
	}
	filters := make([]CategoryFilter, 0, len(categories)+1)
	filters = append(filters, CategoryFilter{
		Key:    model.CategoryAll,
		Label:  "All",
		Href:   "/products",
		Active: active == model.CategoryAll,
	})
	for _, c := range categories {
		if c == model.CategoryAll {
			continue
		}
		filters = append(filters, CategoryFilter{
			Key:    c,
			Label:  categoryLabel(c),
			Href:   "/products?category=" + url.QueryEscape(c),
			Active: active == c,
		})
	}
	return filters
}

// RenderDescription converts a Markdown description to sanitized HTML.
func RenderDescription(markdown string) template.HTML {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := descriptionMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(markdown))
	}
	return template.HTML(strings.TrimSpace(descriptionPolicy.Sanitize(buf.String())))
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
