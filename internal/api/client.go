// Package api is the typed remote API client. Calls are single-shot: no
// retries and no timeout policy beyond the transport default, failures
// propagate to the caller unchanged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/session"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

// ProfileUpdate is the payload for PUT /api/profile.
type ProfileUpdate struct {
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
}

// ChangePasswordRequest is the payload for POST /api/profile/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// OrderLine is one line of an order submission.
type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderRequest is the payload for POST /api/orders.
type OrderRequest struct {
	Items []OrderLine `json:"items"`
}

// OrderResponse is the body of a successful order submission.
type OrderResponse struct {
	OrderID uint `json:"order_id"`
}

// Client talks to the storefront backend. All methods may fail with
// *errors.NetworkError, *errors.HTTPError or *errors.DecodeError.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL. The returned client attaches the
// session's bearer token to every request outside the auth endpoints.
func NewClient(baseURL string, tokens *session.Holder) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{next: http.DefaultTransport, tokens: tokens},
		},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account. Registration does not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Logout revokes the current token on the server.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", LoginResponse{Token: token}, nil)
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies profile changes and returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/api/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/profile/password", ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// PlaceOrder submits the given lines as an order.
func (c *Client) PlaceOrder(ctx context.Context, lines []OrderLine) (uint, error) {
	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", OrderRequest{Items: lines}, &resp); err != nil {
		return 0, err
	}
	return resp.OrderID, nil
}

// do performs one request/response cycle and maps failures onto the client
// error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &apperrors.HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.DecodeError{Err: err}
	}
	return nil
}
