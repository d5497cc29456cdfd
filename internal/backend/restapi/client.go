// Package restapi implements the service.Service interface over the to-do
// REST API client.
package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"todoctl/internal/config"
	"todoctl/internal/service"
	"todoctl/pkg/todoapi"
)

// UserAgentPrefix is joined with the CLI version to form the User-Agent.
const UserAgentPrefix = "todoctl/"

// Client implements service.Service using the to-do REST API.
type Client struct {
	api  *todoapi.Client
	auth *todoapi.AuthClient
}

// New creates a client from cfg. Credentials are optional: without them
// only Register works and every other call returns service.ErrUnauthorized.
func New(cfg *config.Config, version string, logger zerolog.Logger) *Client {
	return NewWithHTTPClient(cfg, nil, version, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client, version string, logger zerolog.Logger) *Client {
	opts := []todoapi.Option{
		todoapi.WithLogger(logger),
		todoapi.WithUserAgent(UserAgentPrefix + version),
	}
	if httpClient != nil {
		opts = append(opts, todoapi.WithHTTPClient(httpClient))
	}

	api := todoapi.New(cfg.BaseURL, opts...)
	c := &Client{api: api}
	if cfg.HasCredentials() {
		c.auth = api.WithCredentials(cfg.Credentials())
	}
	return c
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, reg service.Registration) error {
	res, err := c.api.RegisterUser(ctx, todoapi.Fields(
		"email", reg.Email,
		"first_name", reg.FirstName,
		"last_name", reg.LastName,
		"password", reg.Password,
	))
	return check(res, err)
}

// Authenticate checks the given credentials by reading the user with them.
func (c *Client) Authenticate(ctx context.Context, username, password string) (service.User, error) {
	auth := c.api.WithCredentials(todoapi.Credentials{Username: username, Password: password})
	return readUser(ctx, auth)
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (service.User, error) {
	if c.auth == nil {
		return service.User{}, errNoCredentials
	}
	return readUser(ctx, c.auth)
}

func readUser(ctx context.Context, auth *todoapi.AuthClient) (service.User, error) {
	res, err := auth.ReadUser(ctx)
	if err := check(res, err); err != nil {
		return service.User{}, err
	}

	var u todoapi.User
	if err := res.Decode(&u); err != nil {
		return service.User{}, fmt.Errorf("unexpected user payload: %w", err)
	}
	return service.User{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}, nil
}

// CreateList creates a list and returns it with its server-assigned ID.
func (c *Client) CreateList(ctx context.Context, name string) (service.List, error) {
	if c.auth == nil {
		return service.List{}, errNoCredentials
	}
	res, err := c.auth.AddList(ctx, todoapi.Fields("list_name", name))
	if err := check(res, err); err != nil {
		return service.List{}, err
	}

	var l todoapi.List
	if err := res.Decode(&l); err != nil {
		return service.List{}, fmt.Errorf("unexpected list payload: %w", err)
	}
	if l.ListName == "" {
		l.ListName = name
	}
	return service.List{ID: l.ListID, Name: l.ListName}, nil
}

// ListItems returns the items of a list in server order.
func (c *Client) ListItems(ctx context.Context, listID int) ([]service.Item, error) {
	if c.auth == nil {
		return nil, errNoCredentials
	}
	res, err := c.auth.ViewList(ctx, listID)
	if err := check(res, err); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, nil
	}

	var items []todoapi.Item
	if err := res.Decode(&items); err != nil {
		return nil, fmt.Errorf("unexpected list payload: %w", err)
	}
	result := make([]service.Item, 0, len(items))
	for _, it := range items {
		result = append(result, service.Item{ID: it.TodoItemID, Name: it.TodoItemName})
	}
	return result, nil
}

// AddItem adds an item to a list.
func (c *Client) AddItem(ctx context.Context, listID int, name string) (service.Item, error) {
	if c.auth == nil {
		return service.Item{}, errNoCredentials
	}
	res, err := c.auth.AddItem(ctx, listID, todoapi.Fields("todo_item_name", name))
	if err := check(res, err); err != nil {
		return service.Item{}, err
	}

	// An empty body still means the item was added
	item := service.Item{Name: name}
	if res.Data == nil {
		return item, nil
	}

	var it todoapi.Item
	if err := res.Decode(&it); err != nil {
		return service.Item{}, fmt.Errorf("unexpected item payload: %w", err)
	}
	item.ID = it.TodoItemID
	if it.TodoItemName != "" {
		item.Name = it.TodoItemName
	}
	return item, nil
}

// RenameItem replaces an item's name.
func (c *Client) RenameItem(ctx context.Context, listID, itemID int, name string) error {
	if c.auth == nil {
		return errNoCredentials
	}
	res, err := c.auth.UpdateItem(ctx, listID, itemID, todoapi.Fields("todo_item_name", name))
	return check(res, err)
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, listID, itemID int) error {
	if c.auth == nil {
		return errNoCredentials
	}
	res, err := c.auth.DeleteItem(ctx, listID, itemID)
	return check(res, err)
}

// DeleteList deletes a list.
func (c *Client) DeleteList(ctx context.Context, listID int) error {
	if c.auth == nil {
		return errNoCredentials
	}
	res, err := c.auth.DeleteList(ctx, listID)
	return check(res, err)
}

var errNoCredentials = fmt.Errorf("%w: no credentials configured", service.ErrUnauthorized)

// check converts an operation outcome into an error. Local validation
// failures wrap service.ErrInvalidInput, auth and not-found statuses wrap
// the matching service sentinels, and the server's detail is kept.
func check(res todoapi.APIResult, err error) error {
	if err != nil {
		if errors.Is(err, todoapi.ErrValidation) {
			return fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
		}
		return err
	}
	if res.OK() {
		return nil
	}

	switch res.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, res.ErrorMsg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", service.ErrNotFound, res.ErrorMsg)
	default:
		return res.Err()
	}
}
