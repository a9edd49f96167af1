package repository

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teecha_backend/internals/constants"
	helper "teecha_backend/internals/helpers"
)

var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherListing is one directory card: the user plus the teacher profile and rating.
type TeacherListing struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Bio            *string        `json:"bio"`
	ProfilePicture *string        `json:"profilePicture"`
	Subjects       pq.StringArray `json:"subjects"`
	Qualifications pq.StringArray `json:"qualifications"`
	Experience     int            `json:"experience"`
	HourlyRate     *float64       `json:"hourlyRate"`
	TeachingMode   string         `json:"teachingMode"`
	Location       *string        `json:"location"`
	Languages      pq.StringArray `json:"languages"`
	Availability   datatypes.JSON `json:"availability"`
	AverageRating  float64        `json:"averageRating"`
	ReviewCount    int64          `json:"reviewCount"`
}

type TeacherFilter struct {
	Subject  string
	Location string
	Mode     string
	Search   string
	MaxRate  *float64
}

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

const teacherColumns = `u.id, u.name, u.bio, u.profile_picture,
	tp.subjects, tp.qualifications, tp.experience, tp.hourly_rate, tp.teaching_mode,
	tp.location, tp.languages, tp.availability,
	COALESCE(r.avg_rating, 0) AS average_rating, COALESCE(r.review_count, 0) AS review_count`

func (r *TeacherRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table("users u").
		Joins("JOIN teacher_profiles tp ON tp.user_id = u.id").
		Joins("LEFT JOIN (SELECT teacher_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count FROM reviews GROUP BY teacher_id) r ON r.teacher_id = u.id").
		Where("u.role = ? AND tp.is_completed = ?", constants.RoleTeacher, true)
}

func applyTeacherFilter(q *gorm.DB, f TeacherFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Subject); s != "" {
		q = q.Where("EXISTS (SELECT 1 FROM unnest(tp.subjects) s WHERE s ILIKE ?)", helper.ContainsPattern(s))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		q = q.Where("tp.location ILIKE ?", helper.ContainsPattern(s))
	}
	switch strings.ToLower(strings.TrimSpace(f.Mode)) {
	case constants.TeachingOnline:
		q = q.Where("tp.teaching_mode IN ?", []string{constants.TeachingOnline, constants.TeachingBoth})
	case constants.TeachingOffline:
		q = q.Where("tp.teaching_mode IN ?", []string{constants.TeachingOffline, constants.TeachingBoth})
	case constants.TeachingBoth:
		q = q.Where("tp.teaching_mode = ?", constants.TeachingBoth)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("u.name ILIKE ?", helper.ContainsPattern(s))
	}
	if f.MaxRate != nil {
		q = q.Where("tp.hourly_rate <= ?", *f.MaxRate)
	}
	return q
}

func (r *TeacherRepository) List(ctx context.Context, f TeacherFilter, p helper.Paging) ([]TeacherListing, int64, error) {
	var total int64
	if err := applyTeacherFilter(r.base(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []TeacherListing
	if err := applyTeacherFilter(r.base(ctx), f).
		Select(teacherColumns).
		Order("average_rating DESC").Order("u.created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].AverageRating = RoundRating(rows[i].AverageRating)
	}
	return rows, total, nil
}

func (r *TeacherRepository) Get(ctx context.Context, id uuid.UUID) (*TeacherListing, error) {
	var rows []TeacherListing
	if err := r.base(ctx).Select(teacherColumns).Where("u.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTeacherNotFound
	}
	rows[0].AverageRating = RoundRating(rows[0].AverageRating)
	return &rows[0], nil
}

// RoundRating keeps one decimal.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
