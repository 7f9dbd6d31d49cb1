package dashclient

import (
	"context"
	"net/http"
	"net/url"

	"pmfin-backend/lib/navigation"
)

// Menu returns the navigation tree the server renders for the signed-in role.
func (c *Client) Menu(ctx context.Context) (navigation.Tree, error) {
	return query[navigation.Tree](ctx, c, "navigation", http.MethodGet, "navigation", nil)
}

// Access asks the server for the gate decision on path.
func (c *Client) Access(ctx context.Context, path string) (navigation.AccessView, error) {
	var resp navigation.AccessView
	err := c.send(ctx, http.MethodGet, "navigation/access?"+url.Values{"path": {path}}.Encode(), nil, &resp)
	return resp, err
}
