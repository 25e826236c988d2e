package feed

import (
	"strconv"
	"strings"

	"github.com/vitrinelabs/storefront_api/internal/metrics"
	"github.com/vitrinelabs/storefront_api/internal/models"
)

// Row result labels for parser metrics.
const (
	rowParsed   = "parsed"
	rowRejected = "rejected"
)

// The feed is a 5-column delimited text: name, description, price, stock,
// image list. Fewer columns rejects the row.
const minFields = 5

// Parser converts raw feed text into validated products. Malformed rows are
// a data-quality filter, not a fault: they are dropped without error.
type Parser struct {
	ids     IDGenerator
	metrics *metrics.Metrics
}

// NewParser constructs a Parser using the given id generator. The metrics
// argument may be nil.
func NewParser(ids IDGenerator, m *metrics.Metrics) *Parser {
	return &Parser{ids: ids, metrics: m}
}

// Parse converts raw delimited text into products. The first line is the
// header and is always discarded. Output order follows input row order.
func (p *Parser) Parse(raw string) []models.Product {
	lines := strings.Split(raw, "\n")
	if len(lines) <= 1 {
		return nil
	}

	products := make([]models.Product, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		product, ok := p.parseRow(line)
		if !ok {
			p.metrics.IncRow(rowRejected)
			continue
		}
		p.metrics.IncRow(rowParsed)
		products = append(products, product)
	}
	return products
}

// parseRow maps one feed row onto a Product. A row is rejected when it has
// fewer than five fields or an empty name.
func (p *Parser) parseRow(line string) (models.Product, bool) {
	fields := splitRow(line)
	if len(fields) < minFields {
		return models.Product{}, false
	}

	name := fields[0]
	if name == "" {
		return models.Product{}, false
	}

	return models.Product{
		ID:          p.ids.NewID(),
		Name:        name,
		Description: fields[1],
		Price:       parsePrice(fields[2]),
		Stock:       parseStock(fields[3]),
		Images:      parseImages(fields[4]),
	}, true
}

// splitRow splits a row on commas with quote-toggle semantics: a quote
// character flips an in-quote mode during which commas are literal text.
// Quote characters themselves are dropped. Each field is trimmed.
func splitRow(line string) []string {
	var fields []string
	var field strings.Builder
	inQuote := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}

// parsePrice parses a decimal price that uses a comma as the fractional
// separator. Unparseable or negative values normalize to 0 so downstream
// consumers never see an invalid number.
func parsePrice(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseStock parses an integer stock count, normalizing failures and
// negative values to 0.
func parseStock(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseImages splits the image-list field on commas, trims each URL and
// drops empty entries. An empty result is valid; the placeholder is a
// render concern.
func parseImages(s string) []string {
	var images []string
	for _, u := range strings.Split(s, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			images = append(images, u)
		}
	}
	return images
}
