package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teecha_backend/internals/databases/testdb"
	helperAuth "teecha_backend/internals/helpers/auth"
)

func TestMessageThreadAndDelete(t *testing.T) {
	db := testdb.Open(t)
	alice := testdb.User(t, db, "student")
	bob := testdb.User(t, db, "teacher")

	as := alice.ID
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetContext(c, helperAuth.AuthContext{UserID: as, Role: "student", ProfileCompleted: true})
		return c.Next()
	})
	mc := NewMessageController(db)
	app.Post("/api/messages", mc.Send)
	app.Get("/api/messages/unread-count", mc.UnreadCount)
	app.Get("/api/messages/:userId", mc.Thread)
	app.Delete("/api/messages/:id", mc.Delete)

	do := func(method, path string, body any) (int, map[string]any) {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		out := map[string]any{}
		_ = json.NewDecoder(res.Body).Decode(&out)
		return res.StatusCode, out
	}

	code, body := do("POST", "/api/messages", fiber.Map{"receiverId": bob.ID, "content": "hi bob"})
	require.Equal(t, fiber.StatusCreated, code, body)
	msgID := body["data"].(map[string]any)["id"].(string)
	assert.Nil(t, body["data"].(map[string]any)["readAt"])

	as = bob.ID
	code, body = do("GET", "/api/messages/unread-count", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["unreadCount"])

	// opening the thread returns the messages already marked read
	code, body = do("GET", "/api/messages/"+alice.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, code)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, msgID, row["id"])
	assert.NotNil(t, row["readAt"])
	assert.Equal(t, false, row["isMine"])

	code, body = do("GET", "/api/messages/unread-count", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 0, body["data"].(map[string]any)["unreadCount"])

	code, body = do("DELETE", "/api/messages/"+msgID, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Not authorized to delete this message", body["message"])

	as = alice.ID
	code, _ = do("DELETE", "/api/messages/"+msgID, nil)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do("DELETE", "/api/messages/"+uuid.NewString(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}
