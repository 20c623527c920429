package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mkravets/dailynotes/internal/client/models"
)

// opAuth marks operations where a 401 means bad credentials rather than an
// expired session, so the surfaced message never reveals whether the email
// or the password was wrong.
type opClass int

const (
	opData opClass = iota
	opAuth
)

// HTTPGateway talks JSON over REST to the Daily Notes service. It holds the
// ambient session token: sign-in and sign-up capture it, sign-out drops it,
// and every other call sends it as a bearer header.
//
// Safe for concurrent use.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenStore

	mu        sync.Mutex
	authToken string
}

var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway creates a gateway bound to baseURL. A token previously
// cached by the store (and not yet expired) is picked up immediately, so a
// CurrentUser call right after construction can restore the session.
func NewHTTPGateway(baseURL string, timeout time.Duration, tokens *TokenStore) *HTTPGateway {
	g := &HTTPGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
	if tokens != nil {
		g.authToken = tokens.Load()
	}
	return g
}

func (g *HTTPGateway) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}

func (g *HTTPGateway) token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authToken
}

func (g *HTTPGateway) setToken(token string) {
	g.mu.Lock()
	g.authToken = token
	g.mu.Unlock()

	if g.tokens == nil {
		return
	}
	if token == "" {
		_ = g.tokens.Clear()
	} else {
		_ = g.tokens.Save(token)
	}
}

// errorBody is the service's uniform error payload.
type errorBody struct {
	Error string `json:"error"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (g *HTTPGateway) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if t := g.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, TransportFailure(ErrUnavailable, "service unreachable: %v", err)
	}
	return resp, nil
}

// decodeResponse maps non-2xx statuses to Failures and decodes the body
// into target otherwise. target may be nil for operations without a result.
func decodeResponse(resp *http.Response, class opClass, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
		return mapStatus(resp.StatusCode, class, eb.Error)
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return TransportFailure(ErrUnavailable, "failed to decode response: %v", err)
		}
	}
	return nil
}

func mapStatus(code int, class opClass, serverMsg string) *Failure {
	switch {
	case code == http.StatusUnauthorized && class == opAuth:
		return AuthFailure(ErrInvalidCredentials, "invalid email or password")
	case code == http.StatusUnauthorized:
		return AuthFailure(ErrSessionExpired, "session expired, please sign in again")
	case code == http.StatusForbidden:
		return DataFailure(ErrPermissionDenied, "permission denied")
	case code == http.StatusNotFound:
		return DataFailure(ErrNotFound, "not found")
	case code == http.StatusConflict:
		return AuthFailure(ErrDuplicateAccount, "an account with this email already exists")
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		if serverMsg == "" {
			serverMsg = "invalid request"
		}
		return DataFailure(ErrValidation, "%s", serverMsg)
	default:
		return TransportFailure(ErrUnavailable, "service error (status %d)", code)
	}
}

func (g *HTTPGateway) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/auth/signin", req)
	if err != nil {
		return nil, err
	}

	var result authResponse
	if err := decodeResponse(resp, opAuth, &result); err != nil {
		return nil, err
	}

	g.setToken(result.Token)
	return result.User, nil
}

func (g *HTTPGateway) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}{Email: email, Password: password, Name: name}

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var result authResponse
	if err := decodeResponse(resp, opAuth, &result); err != nil {
		return nil, err
	}

	g.setToken(result.Token)
	return result.User, nil
}

// SignOut is idempotent: without a token it succeeds immediately, and a 401
// from the server only confirms the token was already invalid.
func (g *HTTPGateway) SignOut(ctx context.Context) error {
	if g.token() == "" {
		return nil
	}

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/auth/signout", nil)
	if err != nil {
		return err
	}

	err = decodeResponse(resp, opData, nil)
	if err != nil && KindOf(err) != KindAuth {
		return err
	}

	g.setToken("")
	return nil
}

func (g *HTTPGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	if g.token() == "" {
		return nil, AuthFailure(ErrNotAuthenticated, "not signed in")
	}

	resp, err := g.doRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decodeResponse(resp, opData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) UpdateProfile(ctx context.Context, name string) (*models.User, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	resp, err := g.doRequest(ctx, http.MethodPut, "/api/auth/profile", req)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decodeResponse(resp, opData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) ChangePassword(ctx context.Context, current, next string) error {
	req := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{CurrentPassword: current, NewPassword: next}

	resp, err := g.doRequest(ctx, http.MethodPut, "/api/auth/password", req)
	if err != nil {
		return err
	}
	return decodeResponse(resp, opData, nil)
}

// ListNotes returns the caller's notes newest-first; the ordering is part of
// the server contract and is passed through untouched.
func (g *HTTPGateway) ListNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := g.doRequest(ctx, http.MethodGet, "/api/notes", nil)
	if err != nil {
		return nil, err
	}

	var result []models.Note
	if err := decodeResponse(resp, opData, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *HTTPGateway) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	req := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/notes", req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, opData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error) {
	req := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	resp, err := g.doRequest(ctx, http.MethodPut, "/api/notes/"+id, req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, opData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) DeleteNote(ctx context.Context, id string) error {
	resp, err := g.doRequest(ctx, http.MethodDelete, "/api/notes/"+id, nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, opData, nil)
}
