package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"teecha_backend/internals/constants"
	profileModel "teecha_backend/internals/features/users/profiles/model"
	profileRepo "teecha_backend/internals/features/users/profiles/repository"
	userModel "teecha_backend/internals/features/users/user/model"
)

// UserSeed is one demo account; at most one profile block matching Role is applied.
type UserSeed struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`

	Teacher *profileModel.TeacherProfileModel `json:"teacher"`
	Student *profileModel.StudentProfileModel `json:"student"`
	School  *profileModel.SchoolProfileModel  `json:"school"`
}

func LoadUserSeeds(filePath string) ([]UserSeed, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var seeds []UserSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	for i, s := range seeds {
		if s.Email == "" || s.Password == "" || !constants.IsValidRole(s.Role) {
			return nil, fmt.Errorf("seed #%d: email, password and a valid role are required", i)
		}
	}
	return seeds, nil
}

// SeedUsersFromJSON inserts confirmed demo users, skipping emails that already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seeds:", filePath)
	seeds, err := LoadUserSeeds(filePath)
	if err != nil {
		log.Printf("[SEED ERROR] %v", err)
		return
	}

	ctx := context.Background()
	profiles := profileRepo.NewProfileRepository(db)
	for _, s := range seeds {
		var existing userModel.UserModel
		err := db.Where("email = ?", s.Email).First(&existing).Error
		if err == nil {
			log.Printf("ℹ️ user '%s' already exists, skipped", s.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[SEED ERROR] lookup '%s': %v", s.Email, err)
			continue
		}

		u := userModel.UserModel{
			Email:          s.Email,
			PlainPassword:  s.Password,
			Role:           s.Role,
			Name:           s.Name,
			Bio:            s.Bio,
			EmailConfirmed: true,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("[SEED ERROR] insert '%s': %v", s.Email, err)
			continue
		}
		if err := seedProfile(ctx, profiles, &u, s); err != nil {
			log.Printf("[SEED ERROR] profile '%s': %v", s.Email, err)
			continue
		}
		log.Printf("✅ seeded user '%s'", s.Email)
	}
}

func seedProfile(ctx context.Context, repo *profileRepo.ProfileRepository, u *userModel.UserModel, s UserSeed) error {
	switch {
	case s.Role == constants.RoleTeacher && s.Teacher != nil:
		s.Teacher.UserID = u.ID
		return repo.UpsertTeacher(ctx, s.Teacher)
	case s.Role == constants.RoleStudent && s.Student != nil:
		s.Student.UserID = u.ID
		return repo.UpsertStudent(ctx, s.Student)
	case s.Role == constants.RoleSchool && s.School != nil:
		s.School.UserID = u.ID
		return repo.UpsertSchool(ctx, s.School)
	}
	return nil
}
