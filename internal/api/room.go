package api

import "context"

type createRoomResponse struct {
	RoomID string `json:"room_id"`
}

// CreateRoom asks the server for a fresh room and returns its id. Needs
// an authenticated session; 401 surfaces as ErrUnauthenticated.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	var res createRoomResponse
	if err := c.post(ctx, "/api/create-room", &res); err != nil {
		return "", err
	}
	return res.RoomID, nil
}
