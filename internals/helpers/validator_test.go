package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=teacher student school"`
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "a@x.com", Password: "pass123", Role: "student"})
	assert.Nil(t, errs)
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "nope", Password: "123", Role: "admin"})
	require.NotNil(t, errs)

	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
	assert.Equal(t, "email must be a valid email address", errs["email"][0])
	assert.Equal(t, "password must be at least 6 characters in length", errs["password"][0])
}

func TestValidateStructRequiredMessage(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"email is required"}, errs["email"])
}
