package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/x/:id", func(c *fiber.Ctx) error {
		id, err := ParamUUID(c, "id")
		if err != nil {
			return FromFiberError(c, err)
		}
		return c.SendString(id.String())
	})

	id := uuid.New()
	res, err := app.Test(httptest.NewRequest("GET", "/x/"+id.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/x/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode)
}
