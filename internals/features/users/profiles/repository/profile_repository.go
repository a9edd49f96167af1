package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teecha_backend/internals/constants"
	profileModel "teecha_backend/internals/features/users/profiles/model"
	userModel "teecha_backend/internals/features/users/user/model"
	authMw "teecha_backend/internals/middlewares/auth"
)

var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

var _ authMw.ProfileStatusFinder = (*ProfileRepository)(nil)

// TableForRole maps a role to its profile table.
func TableForRole(role string) string {
	switch role {
	case constants.RoleTeacher:
		return profileModel.TeacherProfileModel{}.TableName()
	case constants.RoleStudent:
		return profileModel.StudentProfileModel{}.TableName()
	case constants.RoleSchool:
		return profileModel.SchoolProfileModel{}.TableName()
	}
	return ""
}

// ProfileStatus reads the user flag and checks the role table for a row.
func (r *ProfileRepository) ProfileStatus(ctx context.Context, userID uuid.UUID) (*authMw.ProfileStatus, error) {
	var row struct {
		Role             string
		ProfileCompleted bool
	}
	res := r.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Select("role", "profile_completed").
		Where("id = ?", userID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	st := &authMw.ProfileStatus{Role: row.Role}
	table := TableForRole(row.Role)
	if table == "" {
		return st, nil
	}
	var completed []bool
	if err := r.DB.WithContext(ctx).Table(table).
		Where("user_id = ?", userID).
		Limit(1).
		Pluck("is_completed", &completed).Error; err != nil {
		return nil, err
	}
	st.HasProfile = len(completed) > 0
	st.ProfileCompleted = row.ProfileCompleted && st.HasProfile && completed[0]
	return st, nil
}

func (r *ProfileRepository) FindUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindProfile loads the role profile of a user; nil when there is none yet.
func (r *ProfileRepository) FindProfile(ctx context.Context, userID uuid.UUID, role string) (any, error) {
	var dest any
	switch role {
	case constants.RoleTeacher:
		dest = &profileModel.TeacherProfileModel{}
	case constants.RoleStudent:
		dest = &profileModel.StudentProfileModel{}
	case constants.RoleSchool:
		dest = &profileModel.SchoolProfileModel{}
	default:
		return nil, nil
	}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}

// upsert writes the profile keyed on user_id and flips users.profile_completed in one transaction.
func (r *ProfileRepository) upsert(ctx context.Context, userID uuid.UUID, profile any, columns []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(append(columns, "is_completed", "updated_at")),
		}).Create(profile).Error
		if err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", userID).
			Update("profile_completed", true).Error
	})
}

func (r *ProfileRepository) UpsertTeacher(ctx context.Context, p *profileModel.TeacherProfileModel) error {
	p.IsCompleted = true
	return r.upsert(ctx, p.UserID, p, []string{
		"subjects", "qualifications", "experience", "hourly_rate", "teaching_mode",
		"location", "languages", "availability",
	})
}

func (r *ProfileRepository) UpsertStudent(ctx context.Context, p *profileModel.StudentProfileModel) error {
	p.IsCompleted = true
	return r.upsert(ctx, p.UserID, p, []string{
		"grade_level", "interests", "learning_goals", "preferred_subjects", "budget", "location",
	})
}

func (r *ProfileRepository) UpsertSchool(ctx context.Context, p *profileModel.SchoolProfileModel) error {
	p.IsCompleted = true
	return r.upsert(ctx, p.UserID, p, []string{
		"school_name", "school_type", "address", "city", "country", "website", "phone",
		"facilities", "programs", "student_count", "established_year", "social_links",
	})
}

func (r *ProfileRepository) UpdateBasic(ctx context.Context, userID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *ProfileRepository) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	return r.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Update("profile_picture", url).Error
}
