package api

import "context"

// Identity is the logged-in user as the server sees them. The name is
// also the display name other lobby participants get shown.
type Identity struct {
	Name string `json:"name"`
}

// WhoAmI resolves the current session's identity. An unauthenticated
// session yields ErrUnauthenticated; callers redirect to LoginURL.
func (c *Client) WhoAmI(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.get(ctx, "/api/whoami", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
