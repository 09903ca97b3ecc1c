package api

import (
	"context"
	"net/http"

	"scholarhub-client/internal/models"
)

// tokenResponse is the wire shape of the login and refresh endpoints.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the registration payload. Registration does not log in.
type RegisterInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Role      models.Role `json:"role"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileUpdateInput patches the identity's name fields.
type ProfileUpdateInput struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, "auth.login", http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.doJSON(ctx, "auth.register", http.MethodPost, "/auth/register", "", input, nil)
}

// Refresh trades a refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, "auth.refresh", http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// Me fetches the current identity for the given access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, "auth.me", http.MethodGet, "/auth/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe patches the current identity and returns the updated user.
func (c *Client) UpdateMe(ctx context.Context, accessToken string, input ProfileUpdateInput) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, "auth.update_me", http.MethodPatch, "/auth/me", accessToken, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, accessToken, current, updated string) error {
	return c.doJSON(ctx, "auth.change_password", http.MethodPost, "/auth/change-password", accessToken,
		passwordChangeRequest{CurrentPassword: current, NewPassword: updated}, nil)
}
