package seeds

import (
	"gorm.io/gorm"

	users "teecha_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	//* Users + profiles
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
