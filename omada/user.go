package omada

import "context"

// User describes the controller account that owns the current session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  int    `json:"type"`
}

func (c *client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.Get(ctx, currentUserPath, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
