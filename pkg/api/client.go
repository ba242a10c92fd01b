package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small SDK for the camwatch service. It covers the token
// lifecycle endpoints; authenticated calls take the access token explicitly
// so the caller controls storage and refresh policy.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new camwatch service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a username and password for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPairResponse, error) {
	var out TokenPairResponse
	err := c.postJSON(ctx, "/login", LoginRequest{
		Username: username,
		Password: password,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges a refresh token for a fresh token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	var out TokenPairResponse
	err := c.postJSON(ctx, "/refreshToken", RefreshTokenRequest{
		RefreshToken: refreshToken,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateAccessToken asks the server whether an access token is currently
// valid. A false result carries no reason.
func (c *Client) ValidateAccessToken(ctx context.Context, accessToken string) (bool, error) {
	var out ValidateAccessTokenResponse
	err := c.postJSON(ctx, "/validateAccessToken", ValidateAccessTokenRequest{
		AccessToken: accessToken,
	}, "", &out)
	if err != nil {
		return false, err
	}
	return out.IsValid, nil
}

// Logout rotates the caller's salt, invalidating every outstanding token.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/logout", nil, accessToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/user/profile", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCamerasPage fetches one page of the camera listing.
func (c *Client) GetCamerasPage(ctx context.Context, accessToken string, page int) (*CamerasResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/cameras/pages/%d", page), nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out CamerasResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// postJSON marshals body, POSTs it to path and decodes a 200 response into
// target.
func (c *Client) postJSON(ctx context.Context, path string, body any, accessToken string, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), accessToken)
	if err != nil {
		return err
	}

	return decodeJSON(resp, target, http.StatusOK)
}

// doRequest performs an HTTP request, attaching the bearer token when one is
// provided.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// decodeJSON decodes a JSON response into the target. Non-expected statuses
// are converted into a typed *Error.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseErrorResponse converts an error response body into a typed *Error.
// Unparseable bodies still produce an *Error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &Error{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        errResp.Error,
		Description: errResp.ErrorDescription,
	}
}
