// Package service defines the backend-agnostic interface for to-do operations.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the server reports a missing list or item.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the server rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when input fails validation before any
	// request is sent.
	ErrInvalidInput = errors.New("invalid input")
)

// Service defines the interface for to-do backend operations.
// All REST API calls go through this interface.
// Commands never import the API client directly.
type Service interface {
	// Register creates a new user account. Needs no credentials.
	Register(ctx context.Context, reg Registration) error

	// Authenticate checks username and password against the server and
	// returns the matching user. It does not change the service's own
	// credentials.
	Authenticate(ctx context.Context, username, password string) (User, error)

	// CurrentUser returns the authenticated user.
	CurrentUser(ctx context.Context) (User, error)

	// CreateList creates a list and returns it with its server-assigned ID.
	CreateList(ctx context.Context, name string) (List, error)

	// ListItems returns the items of a list in server order.
	ListItems(ctx context.Context, listID int) ([]Item, error)

	// AddItem adds an item to a list.
	AddItem(ctx context.Context, listID int, name string) (Item, error)

	// RenameItem replaces an item's name.
	RenameItem(ctx context.Context, listID, itemID int, name string) error

	// DeleteItem deletes an item.
	DeleteItem(ctx context.Context, listID, itemID int) error

	// DeleteList deletes a list.
	DeleteList(ctx context.Context, listID int) error
}
