package todoapi

import (
	"fmt"
	"net/http"
)

// Method is one of the four HTTP verbs the API uses.
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
)

var methodVerbs = map[Method]string{
	MethodGet:    http.MethodGet,
	MethodPost:   http.MethodPost,
	MethodPut:    http.MethodPut,
	MethodDelete: http.MethodDelete,
}

// Verb returns the HTTP verb for m.
// Returns an error for values outside the closed set.
func (m Method) Verb() (string, error) {
	verb, ok := methodVerbs[m]
	if !ok {
		return "", fmt.Errorf("unsupported method: %d", int(m))
	}
	return verb, nil
}

func (m Method) String() string {
	if verb, ok := methodVerbs[m]; ok {
		return verb
	}
	return fmt.Sprintf("Method(%d)", int(m))
}
