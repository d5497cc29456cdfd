// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todoctl/internal/service"
)

// Credentials accepted by FakeService.Authenticate.
const (
	FakeUsername = "bot@example.com"
	FakePassword = "123456"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu         sync.RWMutex
	user       service.User
	password   string
	users      []service.Registration
	lists      map[int]*service.List
	items      map[int][]service.Item // listID -> items
	nextListID int
	nextItemID int

	// Error injection for testing
	RegisterErr    error
	AuthErr        error
	CurrentUserErr error
	CreateListErr  error
	ListItemsErr   map[int]error // listID -> error
	AddItemErr     error
	RenameItemErr  error
	DeleteItemErr  error
	DeleteListErr  error
}

// NewFakeService creates a new FakeService signed in as a default user.
func NewFakeService() *FakeService {
	return &FakeService{
		user:         service.User{Email: FakeUsername, FirstName: "Bot", LastName: "One"},
		password:     FakePassword,
		lists:        make(map[int]*service.List),
		items:        make(map[int][]service.Item),
		ListItemsErr: make(map[int]error),
		nextListID:   1,
		nextItemID:   1,
	}
}

// SeedList adds a list with a fixed ID to the fake service.
func (f *FakeService) SeedList(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[id] = &service.List{ID: id, Name: name}
	if id >= f.nextListID {
		f.nextListID = id + 1
	}
}

// SeedItem adds an item with a fixed ID to a list.
func (f *FakeService) SeedItem(listID, itemID int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[listID] = append(f.items[listID], service.Item{ID: itemID, Name: name})
	if itemID >= f.nextItemID {
		f.nextItemID = itemID + 1
	}
}

// Items returns a copy of a list's items.
func (f *FakeService) Items(listID int) []service.Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Item, len(f.items[listID]))
	copy(out, f.items[listID])
	return out
}

// HasList reports whether a list exists.
func (f *FakeService) HasList(id int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.lists[id]
	return ok
}

// Registrations returns every registration received.
func (f *FakeService) Registrations() []service.Registration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Registration, len(f.users))
	copy(out, f.users)
	return out
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, reg)
	return nil
}

// Authenticate implements service.Service.
func (f *FakeService) Authenticate(ctx context.Context, username, password string) (service.User, error) {
	if f.AuthErr != nil {
		return service.User{}, f.AuthErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if username != f.user.Email || password != f.password {
		return service.User{}, fmt.Errorf("%w: %s", service.ErrUnauthorized, DetailBadCredentials)
	}
	return f.user, nil
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context) (service.User, error) {
	if f.CurrentUserErr != nil {
		return service.User{}, f.CurrentUserErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.List, error) {
	if f.CreateListErr != nil {
		return service.List{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	l := service.List{ID: f.nextListID, Name: name}
	f.nextListID++
	f.lists[l.ID] = &l
	return l, nil
}

// ListItems implements service.Service.
func (f *FakeService) ListItems(ctx context.Context, listID int) ([]service.Item, error) {
	if err, ok := f.ListItemsErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.lists[listID]; !ok {
		return nil, listNotFound()
	}
	out := make([]service.Item, len(f.items[listID]))
	copy(out, f.items[listID])
	return out, nil
}

// AddItem implements service.Service.
func (f *FakeService) AddItem(ctx context.Context, listID int, name string) (service.Item, error) {
	if f.AddItemErr != nil {
		return service.Item{}, f.AddItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lists[listID]; !ok {
		return service.Item{}, listNotFound()
	}
	it := service.Item{ID: f.nextItemID, Name: name}
	f.nextItemID++
	f.items[listID] = append(f.items[listID], it)
	return it, nil
}

// RenameItem implements service.Service.
func (f *FakeService) RenameItem(ctx context.Context, listID, itemID int, name string) error {
	if f.RenameItemErr != nil {
		return f.RenameItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lists[listID]; !ok {
		return listNotFound()
	}
	for i, it := range f.items[listID] {
		if it.ID == itemID {
			f.items[listID][i].Name = name
			return nil
		}
	}
	return itemNotFound()
}

// DeleteItem implements service.Service.
func (f *FakeService) DeleteItem(ctx context.Context, listID, itemID int) error {
	if f.DeleteItemErr != nil {
		return f.DeleteItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lists[listID]; !ok {
		return listNotFound()
	}
	items := f.items[listID]
	for i, it := range items {
		if it.ID == itemID {
			f.items[listID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return itemNotFound()
}

// DeleteList implements service.Service.
func (f *FakeService) DeleteList(ctx context.Context, listID int) error {
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lists[listID]; !ok {
		return listNotFound()
	}
	delete(f.lists, listID)
	delete(f.items, listID)
	return nil
}

func listNotFound() error {
	return fmt.Errorf("%w: %s", service.ErrNotFound, DetailListNotFound)
}

func itemNotFound() error {
	return fmt.Errorf("%w: %s", service.ErrNotFound, DetailItemNotFound)
}
