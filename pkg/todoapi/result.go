package todoapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIResult is the outcome of an operation the server answered.
//
// On success (2xx) Data holds the decoded JSON payload, or nil when the body
// was empty. On failure ErrorMsg holds the server's "detail" message and
// Data is nil. Method is set in both cases.
type APIResult struct {
	Status   int
	Method   Method
	Data     any
	ErrorMsg string
}

// OK reports whether the status is in [200,300).
func (r APIResult) OK() bool {
	return isSuccess(r.Status)
}

// Err returns nil on success and an *APIError on failure.
func (r APIResult) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{Status: r.Status, Method: r.Method, Detail: r.ErrorMsg}
}

// Decode re-decodes Data into v, which must be a pointer.
func (r APIResult) Decode(v any) error {
	if !r.OK() {
		return r.Err()
	}
	if r.Data == nil {
		return errors.New("no data in response")
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Errorf("re-encoding data: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// UserInput is the request body for user registration.
type UserInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// ListInput is the request body for creating a list.
type ListInput struct {
	ListName string `json:"list_name"`
}

// ItemInput is the request body for adding or updating an item.
type ItemInput struct {
	TodoItemName string `json:"todo_item_name"`
}

func newUserInput(in Input) UserInput {
	return UserInput{
		Email:     in["email"],
		FirstName: in["first_name"],
		LastName:  in["last_name"],
		Password:  in["password"],
	}
}

func newListInput(in Input) ListInput {
	return ListInput{ListName: in["list_name"]}
}

func newItemInput(in Input) ItemInput {
	return ItemInput{TodoItemName: in["todo_item_name"]}
}

// User is the payload returned by ReadUser.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// List is the payload returned by AddList.
type List struct {
	ListID   int    `json:"list_id"`
	ListName string `json:"list_name"`
}

// Item is one element of the payload returned by ViewList.
type Item struct {
	TodoItemID   int    `json:"todo_item_id"`
	TodoItemName string `json:"todo_item_name"`
}
