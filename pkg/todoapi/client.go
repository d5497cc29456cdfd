package todoapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the API root of a locally running server.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// Version is the library version used in DefaultUserAgent.
	Version = "0.1.0"

	// DefaultUserAgent is sent unless overridden with WithUserAgent.
	DefaultUserAgent = "todoctl/" + Version
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger for request/response debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// Client is the anonymous tier: operations that need no credentials.
type Client struct {
	transport *Transport
}

// New creates an anonymous client for baseURL.
// An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	o := options{
		logger:    zerolog.Nop(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	t := NewTransport(baseURL, o.httpClient, o.logger)
	t.userAgent = o.userAgent
	return &Client{transport: t}
}

// BaseURL returns the base URL the client sends requests to.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// WithCredentials returns an authenticated client sharing c's transport.
func (c *Client) WithCredentials(creds Credentials) *AuthClient {
	return &AuthClient{Client: c, creds: creds}
}

// RegisterUser validates fields against UserInputSchema and POSTs them to
// /register.
func (c *Client) RegisterUser(ctx context.Context, fields map[string]any) (APIResult, error) {
	in, err := Validate(fields, UserInputSchema)
	if err != nil {
		return APIResult{}, err
	}
	return c.do(ctx, "/register", MethodPost, newUserInput(in), nil)
}

// do runs Transport.Send then Normalize.
func (c *Client) do(ctx context.Context, path string, method Method, body any, creds *Credentials) (APIResult, error) {
	raw, err := c.transport.Send(ctx, path, method, body, creds)
	if err != nil {
		return APIResult{}, err
	}
	return Normalize(raw, method)
}

// AuthClient is the authenticated tier. Every request carries Basic auth
// built from the credentials given at construction.
type AuthClient struct {
	*Client
	creds Credentials
}

// NewAuthenticated creates an authenticated client for baseURL.
func NewAuthenticated(baseURL string, creds Credentials, opts ...Option) *AuthClient {
	return New(baseURL, opts...).WithCredentials(creds)
}

// Username returns the username the client authenticates as.
func (c *AuthClient) Username() string {
	return c.creds.Username
}

func (c *AuthClient) send(ctx context.Context, path string, method Method, body any) (APIResult, error) {
	creds := c.creds
	return c.do(ctx, path, method, body, &creds)
}

// ReadUser fetches the authenticated user. GET /__user__.
func (c *AuthClient) ReadUser(ctx context.Context) (APIResult, error) {
	return c.send(ctx, "/__user__", MethodGet, nil)
}

// AddList creates a list. POST /list with a ListInput body.
func (c *AuthClient) AddList(ctx context.Context, fields map[string]any) (APIResult, error) {
	in, err := Validate(fields, ListInputSchema)
	if err != nil {
		return APIResult{}, err
	}
	return c.send(ctx, "/list", MethodPost, newListInput(in))
}

// ViewList fetches the items of a list. GET /list/{listID}.
func (c *AuthClient) ViewList(ctx context.Context, listID int) (APIResult, error) {
	return c.send(ctx, listPath(listID), MethodGet, nil)
}

// AddItem adds an item to a list. POST /list/{listID} with an ItemInput body.
func (c *AuthClient) AddItem(ctx context.Context, listID int, fields map[string]any) (APIResult, error) {
	in, err := Validate(fields, ItemInputSchema)
	if err != nil {
		return APIResult{}, err
	}
	return c.send(ctx, listPath(listID), MethodPost, newItemInput(in))
}

// UpdateItem replaces an item. PUT /list/{listID}/{itemID} with an ItemInput body.
func (c *AuthClient) UpdateItem(ctx context.Context, listID, itemID int, fields map[string]any) (APIResult, error) {
	in, err := Validate(fields, ItemInputSchema)
	if err != nil {
		return APIResult{}, err
	}
	return c.send(ctx, itemPath(listID, itemID), MethodPut, newItemInput(in))
}

// DeleteItem removes an item. DELETE /list/{listID}/{itemID}.
func (c *AuthClient) DeleteItem(ctx context.Context, listID, itemID int) (APIResult, error) {
	return c.send(ctx, itemPath(listID, itemID), MethodDelete, nil)
}

// DeleteList removes a list. DELETE /list/{listID}.
func (c *AuthClient) DeleteList(ctx context.Context, listID int) (APIResult, error) {
	return c.send(ctx, listPath(listID), MethodDelete, nil)
}

func listPath(listID int) string {
	return fmt.Sprintf("/list/%d", listID)
}

func itemPath(listID, itemID int) string {
	return fmt.Sprintf("/list/%d/%d", listID, itemID)
}
