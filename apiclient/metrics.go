package apiclient

import (
	"context"
	"net/http"
)

const pathDashboardMetrics = "/admin/dashboard-metrics"

// DashboardMetrics are the entity counts shown on the dashboard.
type DashboardMetrics struct {
	Products      int `json:"products_count"`
	Categories    int `json:"categories_count"`
	Subcategories int `json:"subcategories_count"`
	Users         int `json:"users_count"`
}

func (c *Client) DashboardMetrics(ctx context.Context, token string) (DashboardMetrics, error) {
	var m DashboardMetrics
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: pathDashboardMetrics, Token: token, Result: &m})
	return m, err
}
