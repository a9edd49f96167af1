// Package testdb opens the Postgres database used by integration tests.
package testdb

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "teecha_backend/internals/databases"
	userModel "teecha_backend/internals/features/users/user/model"
)

// Open connects to TEST_DATABASE_URL and migrates the schema. Tests skip when the variable is unset.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("set TEST_DATABASE_URL to run Postgres tests")
	}
	db, err := database.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// User inserts a throwaway account; it is deleted (with its cascades) when the test ends.
func User(t testing.TB, db *gorm.DB, role string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Email:          uuid.NewString() + "@teecha.test",
		PlainPassword:  "secret1",
		Role:           role,
		Name:           "Test " + role,
		EmailConfirmed: true,
	}
	require.NoError(t, db.Create(u).Error)
	t.Cleanup(func() { db.Delete(&userModel.UserModel{}, "id = ?", u.ID) })
	return u
}
