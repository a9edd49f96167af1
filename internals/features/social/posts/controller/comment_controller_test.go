package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "teecha_backend/internals/helpers/auth"
)

func TestCommentWhitespaceContentRejected(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetContext(c, helperAuth.AuthContext{UserID: uuid.New(), Role: "student", ProfileCompleted: true})
		return c.Next()
	})
	// validation answers before any repository call, so no database is needed
	cc := NewCommentController(nil)
	app.Post("/api/comments/:postId", cc.Create)
	app.Put("/api/comments/:id", cc.Update)

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/comments/" + uuid.NewString()},
		{"PUT", "/api/comments/" + uuid.NewString()},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"content":"   "}`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode, tc.method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "Validation failed", body["message"])
		errs, _ := body["errors"].(map[string]any)
		assert.Contains(t, errs, "content", tc.method)
	}
}
