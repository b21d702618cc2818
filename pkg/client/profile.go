package client

import (
	"context"
	"net/http"
)

type Profile struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Profile fetches the caller's profile from the user service.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var out Profile
	err := c.doAuthorized(ctx, http.MethodGet, c.userBaseURL+"/api/users/profile", nil, &out)
	return out, err
}

// UpdateProfile upserts the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	var out Profile
	err := c.doAuthorized(ctx, http.MethodPut, c.userBaseURL+"/api/users/profile", in, &out)
	return out, err
}
