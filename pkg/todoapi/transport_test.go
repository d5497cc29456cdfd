package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method      string
	path        string
	user        string
	pass        string
	hasAuth     bool
	contentType string
	requestID   string
	body        []byte
}

// echoServer answers every request with status and body, recording what it saw.
func echoServer(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.Path
		seen.user, seen.pass, seen.hasAuth = r.BasicAuth()
		seen.contentType = r.Header.Get("Content-Type")
		seen.requestID = r.Header.Get(RequestIDHeader)
		seen.body, _ = io.ReadAll(r.Body)
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestTransport_SendWithBodyAndAuth(t *testing.T) {
	srv, seen := echoServer(t, 200, `{"todo_item_name":"Item 1"}`)
	tr := NewTransport(srv.URL+"/api/v1", srv.Client(), zerolog.Nop())

	raw, err := tr.Send(context.Background(), "/list/1", MethodPost,
		ItemInput{TodoItemName: "Item 1"}, &Credentials{Username: "user", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, 200, raw.Status)
	assert.Equal(t, map[string]any{"todo_item_name": "Item 1"}, raw.JSON)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/api/v1/list/1", seen.path)
	assert.True(t, seen.hasAuth)
	assert.Equal(t, "user", seen.user)
	assert.Equal(t, "secret", seen.pass)
	assert.Equal(t, "application/json", seen.contentType)
	assert.NotEmpty(t, seen.requestID)
	assert.JSONEq(t, `{"todo_item_name":"Item 1"}`, string(seen.body))
}

func TestTransport_NoBodyNoAuth(t *testing.T) {
	srv, seen := echoServer(t, 200, `[]`)
	tr := NewTransport(srv.URL, srv.Client(), zerolog.Nop())

	raw, err := tr.Send(context.Background(), "/list/3", MethodGet, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []any{}, raw.JSON)
	assert.False(t, seen.hasAuth)
	assert.Empty(t, seen.contentType)
	assert.Empty(t, seen.body)
}

func TestTransport_EmptyBodyDecodesToNil(t *testing.T) {
	srv, _ := echoServer(t, 204, "")
	tr := NewTransport(srv.URL, srv.Client(), zerolog.Nop())

	raw, err := tr.Send(context.Background(), "/list/1/2", MethodDelete, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 204, raw.Status)
	assert.Nil(t, raw.JSON)
	assert.Empty(t, raw.Body)
}

func TestTransport_InvalidJSON(t *testing.T) {
	srv, _ := echoServer(t, 200, `<html>oops</html>`)
	tr := NewTransport(srv.URL, srv.Client(), zerolog.Nop())

	_, err := tr.Send(context.Background(), "/__user__", MethodGet, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "decode", terr.Op)
	assert.Equal(t, MethodGet, terr.Method)
	assert.Equal(t, srv.URL+"/__user__", terr.URL)
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestTransport_ConnectionRefused(t *testing.T) {
	srv, _ := echoServer(t, 200, `{}`)
	url := srv.URL
	srv.Close()

	tr := NewTransport(url, nil, zerolog.Nop())
	_, err := tr.Send(context.Background(), "/register", MethodPost, UserInput{Email: "e@x.com"}, nil)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "request", terr.Op)
}

func TestTransport_CancelledContext(t *testing.T) {
	srv, _ := echoServer(t, 200, `{}`)
	tr := NewTransport(srv.URL, srv.Client(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Send(ctx, "/__user__", MethodGet, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestTransport_UnsupportedMethod(t *testing.T) {
	tr := NewTransport("http://127.0.0.1:0", nil, zerolog.Nop())

	_, err := tr.Send(context.Background(), "/", Method(99), nil, nil)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "request", terr.Op)
}

func TestTransport_EncodeError(t *testing.T) {
	tr := NewTransport("http://127.0.0.1:0", nil, zerolog.Nop())

	_, err := tr.Send(context.Background(), "/list", MethodPost, map[string]any{"bad": make(chan int)}, nil)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "encode", terr.Op)
}

func TestTransport_URLIsPlainConcatenation(t *testing.T) {
	tr := NewTransport("http://example.test/api/v1", nil, zerolog.Nop())
	assert.Equal(t, "http://example.test/api/v1/list/5", tr.URL("/list/5"))
	assert.Equal(t, "http://example.test/api/v1", tr.BaseURL())
}

func TestTransport_LogsRequestAtDebug(t *testing.T) {
	srv, seen := echoServer(t, 200, `{}`)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tr := NewTransport(srv.URL, srv.Client(), logger)

	_, err := tr.Send(context.Background(), "/__user__", MethodGet, nil, nil)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "response received", line["message"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, seen.requestID, line["request_id"])
}
