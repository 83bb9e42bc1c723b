package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// Client fetches the kilns dataset from its GitHub raw URL. It implements
// pipeline.Fetcher.
//
// The client performs a single request per refresh cycle with no retry: the
// periodic refresh is the dashboard's only retry mechanism, so resty keeps
// its zero retry default.
type Client struct {
	http   *resty.Client
	url    string
	logger *slog.Logger
}

// NewClient creates a dataset fetch client.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http:   resty.New().SetTimeout(timeout),
		url:    url,
		logger: logger,
	}
}

// FetchDataset downloads and decodes the raw record array. A failed request
// or non-2xx response wraps domain.ErrTransport; a payload that is not a
// JSON array wraps domain.ErrFormat. Array elements that are not objects
// come back as nil RawRecords so the normalizer can degrade them instead of
// failing the batch.
func (c *Client) FetchDataset(ctx context.Context) ([]domain.RawRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		// Cache-busting: the raw CDN caches aggressively.
		SetQueryParam("t", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %s", domain.ErrTransport, resp.Status())
	}

	var elements []any
	if err := json.Unmarshal(resp.Body(), &elements); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array: %v", domain.ErrFormat, err)
	}

	records := make([]domain.RawRecord, len(elements))
	for i, el := range elements {
		obj, ok := el.(map[string]any)
		if !ok {
			c.logger.Warn("dataset element is not an object", "index", i)
			continue
		}
		records[i] = domain.RawRecord(obj)
	}

	c.logger.Debug("dataset fetched", "records", len(records))
	return records, nil
}
