package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teecha_backend/internals/constants"
	helper "teecha_backend/internals/helpers"
)

var ErrSchoolNotFound = errors.New("school not found")

type SchoolListing struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Bio             *string        `json:"bio"`
	ProfilePicture  *string        `json:"profilePicture"`
	SchoolName      string         `json:"schoolName"`
	SchoolType      string         `json:"schoolType"`
	Address         *string        `json:"address"`
	City            string         `json:"city"`
	Country         string         `json:"country"`
	Website         *string        `json:"website"`
	Phone           *string        `json:"phone"`
	Facilities      pq.StringArray `json:"facilities"`
	Programs        pq.StringArray `json:"programs"`
	StudentCount    *int           `json:"studentCount"`
	EstablishedYear *int           `json:"establishedYear"`
	SocialLinks     datatypes.JSON `json:"socialLinks"`
}

type SchoolFilter struct {
	City    string
	Country string
	Type    string
	Search  string
}

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

const schoolColumns = `u.id, u.name, u.bio, u.profile_picture,
	sp.school_name, sp.school_type, sp.address, sp.city, sp.country, sp.website, sp.phone,
	sp.facilities, sp.programs, sp.student_count, sp.established_year, sp.social_links`

func (r *SchoolRepository) base(ctx context.Context, f SchoolFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Table("users u").
		Joins("JOIN school_profiles sp ON sp.user_id = u.id").
		Where("u.role = ? AND sp.is_completed = ?", constants.RoleSchool, true)
	if s := strings.TrimSpace(f.City); s != "" {
		q = q.Where("sp.city ILIKE ?", helper.ContainsPattern(s))
	}
	if s := strings.TrimSpace(f.Country); s != "" {
		q = q.Where("sp.country ILIKE ?", helper.ContainsPattern(s))
	}
	if s := strings.TrimSpace(f.Type); s != "" {
		q = q.Where("LOWER(sp.school_type) = LOWER(?)", s)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("sp.school_name ILIKE ? OR u.name ILIKE ?", like, like)
	}
	return q
}

func (r *SchoolRepository) List(ctx context.Context, f SchoolFilter, p helper.Paging) ([]SchoolListing, int64, error) {
	var total int64
	if err := r.base(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []SchoolListing
	if err := r.base(ctx, f).Select(schoolColumns).
		Order("sp.school_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *SchoolRepository) Get(ctx context.Context, id uuid.UUID) (*SchoolListing, error) {
	var rows []SchoolListing
	if err := r.base(ctx, SchoolFilter{}).Select(schoolColumns).
		Where("u.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSchoolNotFound
	}
	return &rows[0], nil
}
