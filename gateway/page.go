package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Page is the normalized list result every caller sees, independent of
// which wire shape the endpoint used.
type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

// pageEnvelope is the modern list response shape.
type pageEnvelope[T any] struct {
	Results    []T `json:"results"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}

// decodePage accepts both list shapes the backend serves: the envelope
// {results, pagination:{page,limit,total}} and the bare-array legacy
// shape still live on some endpoints. Bare arrays carry no pagination
// metadata, so page/limit are echoed from the request and total falls
// back to the item count. Both shapes are supported permanently; this
// adapter is the only place that knows the difference.
func decodePage[T any](data []byte, page, limit int) (*Page[T], error) {
	var env pageEnvelope[T]
	if err := json.Unmarshal(data, &env); err == nil && env.Pagination != nil {
		return &Page[T]{
			Items: env.Results,
			Page:  env.Pagination.Page,
			Limit: env.Pagination.Limit,
			Total: env.Pagination.Total,
		}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "decode list response")}
	}
	return &Page[T]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: len(items),
	}, nil
}

// listPage fetches a list endpoint with standard page/limit parameters
// plus any endpoint-specific filters, and normalizes the result.
func listPage[T any](ctx context.Context, c *Client, path string, page, limit int, filters url.Values) (*Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	for key, values := range filters {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	data, err := c.request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[T](data, page, limit)
}
