package client

import (
	"context"
	"fmt"
	"net/http"
)

// GetMetrics fetches account usage metrics (storage, counts, plan limits).
func (c *Client) GetMetrics(ctx context.Context) (any, error) {
	res, err := c.do(ctx, http.MethodGet, apiPrefix+"/metrics", nil, "")
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return res, nil
}
