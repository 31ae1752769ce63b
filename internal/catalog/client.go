package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
)

// Client fetches category listings from the back office.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a catalog client against the configured back office.
func NewClient(cfg config.BackOfficeConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("back office base url required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// List returns the purchasable items for a category.
func (c *Client) List(ctx context.Context, category string) ([]Item, error) {
	endpoint := fmt.Sprintf("%s/api/v1/products?category=%s", c.baseURL, url.QueryEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog fetch returned status %d", resp.StatusCode))
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return items, nil
}
