// internal/store/catalog.go
package store

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/core"
)

const catalogDir = "catalogs"

// CatalogPath returns the storage path for a symbol's catalog.
func CatalogPath(symbol string) string {
	return path.Join(catalogDir, strings.ToUpper(symbol)+".json")
}

// SaveCatalog writes the catalog as indented JSON.
func SaveCatalog(ctx context.Context, b Backend, c *catalog.Catalog) error {
	if c == nil || c.Symbol == "" {
		return core.Wrapf(core.ErrInvalidParams, "catalog needs a symbol")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return core.Wrapf(core.ErrStoreFailed, "encode catalog %s: %v", c.Symbol, err)
	}
	return b.Write(ctx, CatalogPath(c.Symbol), data)
}

// LoadCatalog reads a symbol's catalog back. A missing catalog surfaces as
// core.ErrNotFound from the backend.
func LoadCatalog(ctx context.Context, b Backend, symbol string) (*catalog.Catalog, error) {
	data, err := b.Read(ctx, CatalogPath(symbol))
	if err != nil {
		return nil, err
	}
	var c catalog.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "decode catalog %s: %v", symbol, err)
	}
	return &c, nil
}

// ListCatalogSymbols returns the symbols with a stored catalog.
func ListCatalogSymbols(ctx context.Context, b Backend) ([]string, error) {
	paths, err := b.List(ctx, catalogDir+"/")
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(paths))
	for _, p := range paths {
		name := path.Base(p)
		if strings.HasSuffix(name, ".json") {
			symbols = append(symbols, strings.TrimSuffix(name, ".json"))
		}
	}
	return symbols, nil
}
