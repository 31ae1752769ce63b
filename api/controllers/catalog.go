package controllers

import (
	"context"
	"net/http"

	"github.com/rjbuenaventura/kusina-pos/api/responses"
	"github.com/rjbuenaventura/kusina-pos/internal/catalog"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

// CatalogProvider is the slice of the catalog the API consumes.
type CatalogProvider interface {
	List(ctx context.Context, category string) ([]catalog.Item, error)
	Find(ctx context.Context, category string, productID int64) (*catalog.Item, error)
}

// CatalogList serves the product grid for one category tab.
func CatalogList(provider CatalogProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog provider unavailable"))
			return
		}

		category := r.URL.Query().Get("category")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCategory(ctx, category)
		}

		items, err := provider.List(ctx, category)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"category": category,
			"items":    items,
		})
	}
}
