// Package woo is a minimal WooCommerce REST API v3 client covering the
// resources the sync workers pull: orders and products.
package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/pkg/httpclient"
)

const (
	apiBase = "/wp-json/wc/v3"

	// DefaultPageSize is the WooCommerce maximum per_page.
	DefaultPageSize = 100
)

// Config holds the per-store connection settings. The consumer key pair
// comes from the store record, decrypted just before use.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
}

func NewClient(http *httpclient.HttpClient, cfg Config) *Client {
	return &Client{
		http: http,
		cfg:  cfg,
	}
}

type Client struct {
	http *httpclient.HttpClient
	cfg  Config
}

// ListOrders fetches one page of orders, oldest first so a resumed sync
// replays deterministically.
func (c *Client) ListOrders(ctx context.Context, page, perPage int) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/orders", listQuery(page, perPage), &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, page, perPage int) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", listQuery(page, perPage), &products); err != nil {
		return nil, err
	}

	return products, nil
}

func listQuery(page, perPage int) url.Values {
	if perPage <= 0 || perPage > DefaultPageSize {
		perPage = DefaultPageSize
	}

	return url.Values{
		"page":     []string{strconv.Itoa(page)},
		"per_page": []string{strconv.Itoa(perPage)},
		"order":    []string{"asc"},
		"orderby":  []string{"date"},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.http.Do(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    strings.TrimRight(c.cfg.BaseURL, "/") + apiBase + path,
		Query:  query,
		Auth: &httpclient.BasicAuth{
			Username: c.cfg.ConsumerKey,
			Password: c.cfg.ConsumerSecret,
		},
	})
	if err != nil {
		return errs.ExternalService("woocommerce", fmt.Sprintf("request to %s failed", path), err)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errs.ExternalService("woocommerce", fmt.Sprintf("invalid response from %s", path), err)
	}

	return nil
}
