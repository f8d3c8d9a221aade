// Package client implementa el consumidor Go de la API: un proveedor de
// sesión con máquina de estados (restaurar, login, logout) y un fetcher de
// datos con caché TTL y un único reintento.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// State estados del proveedor de sesión.
type State int

const (
	StateUnauthenticated State = iota
	StateChecking
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// User datos mínimos del usuario autenticado que expone la API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

type loginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// APIError error devuelto por la API con código y estado HTTP.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Options configuración del cliente.
type Options struct {
	BaseURL    string
	Store      TokenStore
	HTTPClient *http.Client
	OnRedirect func() // invocado tras logout (p. ej. volver a la pantalla de login)
}

// Client proveedor de sesión. Estados: unauthenticated → checking →
// authenticated; logout siempre limpia localmente aunque el servidor falle.
type Client struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
	onRedirect func()

	mu     sync.Mutex
	state  State
	tokens *Tokens
	user   *User
}

// NewClient construye el cliente en estado unauthenticated.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Client{
		baseURL:    opts.BaseURL,
		store:      store,
		httpClient: hc,
		onRedirect: opts.OnRedirect,
	}
}

// State devuelve el estado actual de la sesión.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser devuelve el usuario autenticado, o nil.
func (c *Client) CurrentUser() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// AccessToken devuelve el token de acceso vigente, o "".
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken
}

// Restore intenta restaurar la sesión guardada al arrancar: sin token queda
// unauthenticated; con token pasa por checking y valida contra /profile. Un
// token que el servidor rechaza se descarta del store.
func (c *Client) Restore(ctx context.Context) error {
	tokens, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("cargar tokens: %w", err)
	}
	if tokens == nil || tokens.AccessToken == "" {
		c.setState(StateUnauthenticated, nil, nil)
		return nil
	}

	c.setState(StateChecking, tokens, nil)

	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", tokens.AccessToken, nil, &user); err != nil {
		_ = c.store.Clear()
		c.setState(StateUnauthenticated, nil, nil)
		return nil
	}
	c.setState(StateAuthenticated, tokens, &user)
	return nil
}

// Login autentica con email y password. En éxito guarda los tokens y pasa a
// authenticated; en fallo permanece unauthenticated y devuelve el error.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		c.setState(StateUnauthenticated, nil, nil)
		return err
	}
	tokens := &Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	if err := c.store.Save(tokens); err != nil {
		return fmt.Errorf("guardar tokens: %w", err)
	}
	c.setState(StateAuthenticated, tokens, &out.User)
	return nil
}

// Logout revoca la sesión en el servidor (best effort) y SIEMPRE limpia el
// estado local, incluso si la llamada falla. Después invoca el callback de
// redirección si está configurado.
func (c *Client) Logout(ctx context.Context) {
	token := c.AccessToken()
	if token != "" {
		// El resultado se ignora a propósito: el logout local no depende del servidor.
		_ = c.doJSON(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
	}
	_ = c.store.Clear()
	c.setState(StateUnauthenticated, nil, nil)
	if c.onRedirect != nil {
		c.onRedirect()
	}
}

func (c *Client) setState(s State, tokens *Tokens, user *User) {
	c.mu.Lock()
	c.state = s
	c.tokens = tokens
	c.user = user
	c.mu.Unlock()
}

// doJSON ejecuta una petición JSON contra la API y decodifica la respuesta.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
