package client

import "context"

// User mirrors the public user object returned by the auth service; the
// password hash never appears on the wire.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	var out tokenResponse
	err := c.post(ctx, c.authBaseURL+"/api/auth/register", map[string]string{
		"email": email, "password": password, "name": name,
	}, &out)
	if err != nil {
		return User{}, err
	}
	c.creds.SetPair(out.AccessToken, out.RefreshToken)
	return out.User, nil
}

// Login authenticates and stores the issued token pair.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out tokenResponse
	err := c.post(ctx, c.authBaseURL+"/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return User{}, err
	}
	c.creds.SetPair(out.AccessToken, out.RefreshToken)
	return out.User, nil
}

// Logout invalidates the server-side session best-effort and always drops
// local credentials.
func (c *Client) Logout(ctx context.Context) error {
	refreshToken := c.creds.RefreshToken()
	defer c.creds.Clear()

	if refreshToken == "" {
		return nil
	}
	return c.post(ctx, c.authBaseURL+"/api/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	}, nil)
}
