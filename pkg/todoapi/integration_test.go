//go:build integration

package todoapi_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/pkg/todoapi"
)

// TestLiveServer runs the full lifecycle against a real server. It needs
// TODOCTL_BASE_URL, e.g. http://localhost:8000/api/v1.
func TestLiveServer(t *testing.T) {
	baseURL := os.Getenv("TODOCTL_BASE_URL")
	if baseURL == "" {
		t.Skip("TODOCTL_BASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := uuid.NewString()
	creds := todoapi.Credentials{Username: "bot-" + id + "@example.com", Password: id}

	c := todoapi.New(baseURL)
	res, err := c.RegisterUser(ctx, todoapi.Fields(
		"email", creds.Username,
		"first_name", "Bot",
		"last_name", "Integration",
		"password", creds.Password,
	))
	require.NoError(t, err)
	require.True(t, res.OK(), "register: %v", res.Err())

	auth := c.WithCredentials(creds)

	res, err = auth.ReadUser(ctx)
	require.NoError(t, err)
	var user todoapi.User
	require.NoError(t, res.Decode(&user))
	assert.Equal(t, creds.Username, user.Email)

	res, err = auth.AddList(ctx, todoapi.Fields("list_name", "integration"))
	require.NoError(t, err)
	var list todoapi.List
	require.NoError(t, res.Decode(&list))

	res, err = auth.AddItem(ctx, list.ListID, todoapi.Fields("todo_item_name", "first"))
	require.NoError(t, err)
	require.True(t, res.OK())

	res, err = auth.ViewList(ctx, list.ListID)
	require.NoError(t, err)
	var items []todoapi.Item
	require.NoError(t, res.Decode(&items))
	require.Len(t, items, 1)

	res, err = auth.UpdateItem(ctx, list.ListID, items[0].TodoItemID, todoapi.Fields("todo_item_name", "renamed"))
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = auth.DeleteItem(ctx, list.ListID, items[0].TodoItemID)
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = auth.DeleteList(ctx, list.ListID)
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = auth.ViewList(ctx, list.ListID)
	require.NoError(t, err)
	assert.Equal(t, 404, res.Status)
	assert.NotEmpty(t, res.ErrorMsg)
}
