package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 10 * time.Second

// Client is a typed HTTP client for the enrollment portal API. It holds no
// session state: callers pass the bearer token on every protected call.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type messageBody struct {
	Message string `json:"message"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

// Login exchanges credentials for a bearer token.
// POST /auth/login
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	var grant tokenGrant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return "", &TransportError{Op: "decode login response", Err: err}
	}
	return grant.AccessToken, nil
}

// Register creates a student account. Role elevation is not available here.
// POST /auth/register
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     "student",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &AuthError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	return nil
}

// Me exchanges a token for the identity it represents.
// GET /auth/me
func (c *Client) Me(ctx context.Context, token string) (Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Identity{}, ErrSessionInvalid
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, &FetchError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, &TransportError{Op: "decode identity", Err: err}
	}
	return id, nil
}

// Users lists all accounts. Requires an admin token.
// GET /auth/users
func (c *Client) Users(ctx context.Context, token string) ([]Account, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/users", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrSessionInvalid
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	var accounts []Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, &TransportError{Op: "decode roster", Err: err}
	}
	return accounts, nil
}

// Activities fetches the full catalog snapshot.
// GET /activities
func (c *Client) Activities(ctx context.Context, token string) (Catalog, error) {
	resp, err := c.do(ctx, http.MethodGet, "/activities", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrSessionInvalid
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	var catalog Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, &TransportError{Op: "decode catalog", Err: err}
	}
	return catalog, nil
}

// Signup enrolls the token's user in the named activity. The server is the
// sole authority: no eligibility pre-check happens here.
// POST /activities/{name}/signup
func (c *Client) Signup(ctx context.Context, token, activityName string) (string, error) {
	return c.command(ctx, http.MethodPost,
		fmt.Sprintf("/activities/%s/signup", url.PathEscape(activityName)), token)
}

// Unregister removes the token's user from the named activity.
// DELETE /activities/{name}/unregister
func (c *Client) Unregister(ctx context.Context, token, activityName string) (string, error) {
	return c.command(ctx, http.MethodDelete,
		fmt.Sprintf("/activities/%s/unregister", url.PathEscape(activityName)), token)
}

func (c *Client) command(ctx context.Context, method, path, token string) (string, error) {
	resp, err := c.do(ctx, method, path, token, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrSessionInvalid
	}
	if resp.StatusCode != http.StatusOK {
		return "", &CommandError{StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	var body messageBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TransportError{Op: "decode command response", Err: err}
	}
	return body.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, &TransportError{Op: "encode request", Err: err}
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// readDetail extracts the server's {"detail": ...} reason, if any.
func readDetail(resp *http.Response) string {
	var body detailBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
