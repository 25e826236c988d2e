package feed

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/catalog"
)

// Loader ties the fetcher and parser to the catalog: one call fetches the
// feed, parses it and swaps the product set. On fetch failure the catalog
// is left as it was (empty at startup), the error surfaces once, and the
// session keeps running.
type Loader struct {
	fetcher *Fetcher
	parser  *Parser
	catalog *catalog.Catalog
}

// NewLoader constructs a Loader.
func NewLoader(fetcher *Fetcher, parser *Parser, cat *catalog.Catalog) *Loader {
	return &Loader{fetcher: fetcher, parser: parser, catalog: cat}
}

// Load fetches and parses the feed, replaces the catalog contents and
// returns the number of products loaded.
func (l *Loader) Load(ctx context.Context) (int, error) {
	raw, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	products := l.parser.Parse(raw)
	l.catalog.Replace(products)
	log.Info().Int("products", len(products)).Msg("catalog loaded from feed")
	return len(products), nil
}
