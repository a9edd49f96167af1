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
	"gorm.io/gorm"

	"teecha_backend/internals/databases/testdb"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type caller struct {
	t   *testing.T
	app *fiber.App
	as  uuid.UUID
}

func newPostApp(t *testing.T, db *gorm.DB) *caller {
	cl := &caller{t: t, app: fiber.New()}
	cl.app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetContext(c, helperAuth.AuthContext{UserID: cl.as, Role: "student", ProfileCompleted: true})
		return c.Next()
	})
	posts := NewPostController(db)
	cl.app.Post("/api/posts", posts.Create)
	cl.app.Put("/api/posts/:id", posts.Update)
	cl.app.Delete("/api/posts/:id", posts.Delete)

	comments := NewCommentController(db)
	cl.app.Post("/api/comments/:postId", comments.Create)
	cl.app.Put("/api/comments/:id", comments.Update)
	cl.app.Delete("/api/comments/:id", comments.Delete)
	return cl
}

func (cl *caller) do(method, path string, body any) (int, map[string]any) {
	cl.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(cl.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	res, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	out := map[string]any{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func (cl *caller) create(path string, body any) string {
	cl.t.Helper()
	code, out := cl.do("POST", path, body)
	require.Equal(cl.t, fiber.StatusCreated, code, out)
	return out["data"].(map[string]any)["id"].(string)
}

func TestPostAndCommentOwnership(t *testing.T) {
	db := testdb.Open(t)
	cl := newPostApp(t, db)
	author := testdb.User(t, db, "teacher")
	stranger := testdb.User(t, db, "student")

	cl.as = author.ID
	post := cl.create("/api/posts", fiber.Map{"content": "first lesson"})
	comment := cl.create("/api/comments/"+post, fiber.Map{"content": "notes"})

	cl.as = stranger.ID
	code, body := cl.do("PUT", "/api/posts/"+post, fiber.Map{"content": "edited"})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Not authorized to modify this post", body["message"])
	code, _ = cl.do("DELETE", "/api/posts/"+post, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, body = cl.do("PUT", "/api/comments/"+comment, fiber.Map{"content": "edited"})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Not authorized to modify this comment", body["message"])
	code, _ = cl.do("DELETE", "/api/comments/"+comment, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	cl.as = author.ID
	code, body = cl.do("PUT", "/api/comments/"+comment, fiber.Map{"content": "  revised  "})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "revised", body["data"].(map[string]any)["content"])

	code, _ = cl.do("DELETE", "/api/comments/"+comment, nil)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = cl.do("DELETE", "/api/posts/"+post, nil)
	assert.Equal(t, fiber.StatusOK, code)
}
