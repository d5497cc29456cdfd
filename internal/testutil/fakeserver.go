package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

// Detail messages returned by FakeServer.
const (
	DetailNotAuthenticated = "Not authenticated"
	DetailBadCredentials   = "Incorrect email or password"
	DetailEmailRegistered  = "Email already registered"
	DetailListNotFound     = "List does not exists"
	DetailItemNotFound     = "Item does not exists"
	DetailInvalidBody      = "Invalid request body"
)

// RecordedRequest is what FakeServer saw for one request.
type RecordedRequest struct {
	Method      string
	Path        string
	Username    string
	HasAuth     bool
	ContentType string
	RequestID   string
	UserAgent   string
	Body        []byte
}

type fakeUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"-"`
}

type fakeItem struct {
	ID   int    `json:"todo_item_id"`
	Name string `json:"todo_item_name"`
}

type fakeList struct {
	ID    int
	Name  string
	Owner string
	Items []fakeItem
}

// FakeServer is an in-memory implementation of the to-do REST API.
// Lists belong to the user who created them; other users get 404.
type FakeServer struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[string]fakeUser
	lists      map[int]*fakeList
	nextListID int
	nextItemID int
	requests   []RecordedRequest
}

// NewFakeServer starts a FakeServer. It is closed when the test ends.
func NewFakeServer(t interface{ Cleanup(func()) }) *FakeServer {
	s := &FakeServer{
		users:      make(map[string]fakeUser),
		lists:      make(map[int]*fakeList),
		nextListID: 1,
		nextItemID: 1,
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/register", s.register).Methods(http.MethodPost)

	r.Handle("/__user__", s.basicAuth(s.readUser)).Methods(http.MethodGet)
	r.Handle("/list", s.basicAuth(s.addList)).Methods(http.MethodPost)
	r.Handle("/list/{listID:[0-9]+}", s.basicAuth(s.viewList)).Methods(http.MethodGet)
	r.Handle("/list/{listID:[0-9]+}", s.basicAuth(s.addItem)).Methods(http.MethodPost)
	r.Handle("/list/{listID:[0-9]+}", s.basicAuth(s.deleteList)).Methods(http.MethodDelete)
	r.Handle("/list/{listID:[0-9]+}/{itemID:[0-9]+}", s.basicAuth(s.updateItem)).Methods(http.MethodPut)
	r.Handle("/list/{listID:[0-9]+}/{itemID:[0-9]+}", s.basicAuth(s.deleteItem)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddUser registers a user directly, bypassing the API.
func (s *FakeServer) AddUser(email, password, firstName, lastName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = fakeUser{Email: email, FirstName: firstName, LastName: lastName, Password: password}
}

// Requests returns a copy of every request seen so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *FakeServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		user, _, ok := r.BasicAuth()
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Username:    user,
			HasAuth:     ok,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			UserAgent:   r.UserAgent(),
			Body:        body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type ctxUserKey struct{}

func (s *FakeServer) basicAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", "Basic")
			writeDetail(w, http.StatusUnauthorized, DetailNotAuthenticated)
			return
		}
		s.mu.Lock()
		u, exists := s.users[email]
		s.mu.Unlock()
		if !exists || u.Password != password {
			w.Header().Set("WWW-Authenticate", "Basic")
			writeDetail(w, http.StatusUnauthorized, DetailBadCredentials)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, email)))
	})
}

func userFrom(r *http.Request) string {
	email, _ := r.Context().Value(ctxUserKey{}).(string)
	return email
}

func (s *FakeServer) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, DetailInvalidBody)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[in.Email]; exists {
		writeDetail(w, http.StatusBadRequest, DetailEmailRegistered)
		return
	}
	s.users[in.Email] = fakeUser{Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Password: in.Password}
	w.WriteHeader(http.StatusNoContent)
}

func (s *FakeServer) readUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := s.users[userFrom(r)]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *FakeServer) addList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ListName string `json:"list_name"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := &fakeList{ID: s.nextListID, Name: in.ListName, Owner: userFrom(r)}
	s.nextListID++
	s.lists[l.ID] = l
	writeJSON(w, http.StatusOK, map[string]any{"list_id": l.ID, "list_name": l.Name})
}

func (s *FakeServer) viewList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	items := make([]fakeItem, len(l.Items))
	copy(items, l.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, items)
}

func (s *FakeServer) addItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TodoItemName string `json:"todo_item_name"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	item := fakeItem{ID: s.nextItemID, Name: in.TodoItemName}
	s.nextItemID++
	l.Items = append(l.Items, item)
	writeJSON(w, http.StatusOK, item)
}

func (s *FakeServer) updateItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TodoItemName string `json:"todo_item_name"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	i, ok := itemIndex(w, r, l)
	if !ok {
		return
	}
	l.Items[i].Name = in.TodoItemName
	w.WriteHeader(http.StatusNoContent)
}

func (s *FakeServer) deleteItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	i, ok := itemIndex(w, r, l)
	if !ok {
		return
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *FakeServer) deleteList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	delete(s.lists, l.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ownedList looks up the {listID} route variable. Callers hold s.mu.
func (s *FakeServer) ownedList(w http.ResponseWriter, r *http.Request) (*fakeList, bool) {
	id, _ := strconv.Atoi(mux.Vars(r)["listID"])
	l, ok := s.lists[id]
	if !ok || l.Owner != userFrom(r) {
		writeDetail(w, http.StatusNotFound, DetailListNotFound)
		return nil, false
	}
	return l, true
}

func itemIndex(w http.ResponseWriter, r *http.Request, l *fakeList) (int, bool) {
	id, _ := strconv.Atoi(mux.Vars(r)["itemID"])
	for i, item := range l.Items {
		if item.ID == id {
			return i, true
		}
	}
	writeDetail(w, http.StatusNotFound, DetailItemNotFound)
	return 0, false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, DetailInvalidBody)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
