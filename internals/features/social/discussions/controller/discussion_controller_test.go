package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"
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

func newDiscussionApp(t *testing.T, db *gorm.DB) *caller {
	cl := &caller{t: t, app: fiber.New()}
	cl.app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetContext(c, helperAuth.AuthContext{UserID: cl.as, Role: "student", ProfileCompleted: true})
		return c.Next()
	})
	dc := NewDiscussionController(db)
	g := cl.app.Group("/api/discussions")
	g.Post("/", dc.Create)
	g.Get("/", dc.List)
	g.Delete("/comments/:commentId", dc.DeleteComment)
	g.Put("/:id", dc.Update)
	g.Delete("/:id", dc.Delete)
	g.Put("/:id/pin", dc.TogglePin)
	g.Put("/:id/close", dc.ToggleClose)
	g.Post("/:id/comments", dc.AddComment)
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

func TestDiscussionOwnershipAndComments(t *testing.T) {
	db := testdb.Open(t)
	cl := newDiscussionApp(t, db)
	owner := testdb.User(t, db, "teacher")
	other := testdb.User(t, db, "student")

	cl.as = owner.ID
	first := cl.create("/api/discussions", fiber.Map{"title": "Lesson plans", "content": "share yours"})
	second := cl.create("/api/discussions", fiber.Map{"title": "Exam tips", "content": "go"})
	foreign := cl.create("/api/discussions/"+second+"/comments", fiber.Map{"content": "on the other thread"})

	cl.as = other.ID
	for _, tc := range []struct{ method, path string }{
		{"PUT", "/api/discussions/" + first},
		{"DELETE", "/api/discussions/" + first},
		{"PUT", "/api/discussions/" + first + "/pin"},
		{"PUT", "/api/discussions/" + first + "/close"},
	} {
		code, _ := cl.do(tc.method, tc.path, fiber.Map{"title": "taken over"})
		assert.Equal(t, fiber.StatusForbidden, code, tc.method+" "+tc.path)
	}
	mine := cl.create("/api/discussions/"+first+"/comments", fiber.Map{"content": "hello"})

	code, body := cl.do("POST", "/api/discussions/"+first+"/comments", fiber.Map{"content": "reply", "parentId": foreign})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Parent comment does not belong to this discussion", body["message"])

	cl.as = owner.ID
	code, _ = cl.do("DELETE", "/api/discussions/comments/"+mine, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, body = cl.do("PUT", "/api/discussions/"+first+"/close", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["data"].(map[string]any)["isClosed"])

	cl.as = other.ID
	code, body = cl.do("POST", "/api/discussions/"+first+"/comments", fiber.Map{"content": "too late"})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "This discussion is closed", body["message"])

	code, _ = cl.do("DELETE", "/api/discussions/comments/"+mine, nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestDiscussionSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testdb.Open(t)
	cl := newDiscussionApp(t, db)
	cl.as = testdb.User(t, db, "teacher").ID

	tag := uuid.NewString()[:8]
	want := cl.create("/api/discussions", fiber.Map{"title": tag + " 100% done", "content": "x"})
	cl.create("/api/discussions", fiber.Map{"title": tag + " 1000 done", "content": "x"})

	code, body := cl.do("GET", "/api/discussions?search="+url.QueryEscape(tag+" 100%"), nil)
	require.Equal(t, fiber.StatusOK, code)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, want, rows[0].(map[string]any)["id"])
}
