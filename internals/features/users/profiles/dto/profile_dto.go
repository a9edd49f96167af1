package dto

import (
	"strings"

	"gorm.io/datatypes"

	profileModel "teecha_backend/internals/features/users/profiles/model"
	userModel "teecha_backend/internals/features/users/user/model"
)

/* ===================== Requests ===================== */

type TeacherProfileRequest struct {
	Subjects       []string       `json:"subjects" validate:"required,min=1,dive,required,max=100"`
	Qualifications []string       `json:"qualifications" validate:"omitempty,dive,max=200"`
	Experience     int            `json:"experience" validate:"gte=0,lte=80"`
	HourlyRate     *float64       `json:"hourlyRate" validate:"omitempty,gte=0"`
	TeachingMode   string         `json:"teachingMode" validate:"required,oneof=online offline both"`
	Location       *string        `json:"location" validate:"omitempty,max=150"`
	Languages      []string       `json:"languages" validate:"omitempty,dive,max=50"`
	Availability   datatypes.JSON `json:"availability"`
}

type StudentProfileRequest struct {
	GradeLevel        string   `json:"gradeLevel" validate:"required,max=50"`
	Interests         []string `json:"interests" validate:"required,min=1,dive,required,max=100"`
	LearningGoals     []string `json:"learningGoals" validate:"omitempty,dive,max=200"`
	PreferredSubjects []string `json:"preferredSubjects" validate:"omitempty,dive,max=100"`
	Budget            *float64 `json:"budget" validate:"omitempty,gte=0"`
	Location          *string  `json:"location" validate:"omitempty,max=150"`
}

type SchoolProfileRequest struct {
	SchoolName      string         `json:"schoolName" validate:"required,max=200"`
	SchoolType      string         `json:"schoolType" validate:"required,max=50"`
	Address         *string        `json:"address"`
	City            string         `json:"city" validate:"required,max=100"`
	Country         string         `json:"country" validate:"required,max=100"`
	Website         *string        `json:"website" validate:"omitempty,url"`
	Phone           *string        `json:"phone" validate:"omitempty,max=30"`
	Facilities      []string       `json:"facilities" validate:"omitempty,dive,max=100"`
	Programs        []string       `json:"programs" validate:"omitempty,dive,max=100"`
	StudentCount    *int           `json:"studentCount" validate:"omitempty,gte=0"`
	EstablishedYear *int           `json:"establishedYear" validate:"omitempty,gte=1000,lte=3000"`
	SocialLinks     datatypes.JSON `json:"socialLinks"`
}

type BasicProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio  *string `json:"bio" validate:"omitempty,max=1000"`
}

/* ===================== Responses ===================== */

type ProfileStatusResponse struct {
	HasProfile         bool   `json:"hasProfile"`
	IsProfileCompleted bool   `json:"isProfileCompleted"`
	ProfileCompleted   bool   `json:"profileCompleted"`
	Role               string `json:"role"`
}

type ProfileResponse struct {
	User             *userModel.UserModel `json:"user"`
	Profile          any                  `json:"profile"`
	HasProfile       bool                 `json:"hasProfile"`
	ProfileCompleted bool                 `json:"profileCompleted"`
}

type PublicProfileResponse struct {
	User    userModel.UserSummary `json:"user"`
	Bio     *string               `json:"bio"`
	Profile any                   `json:"profile"`
}

/* ===================== Mapping ===================== */

// CleanList trims entries, drops blanks and case-insensitive duplicates.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (r TeacherProfileRequest) ToModel() *profileModel.TeacherProfileModel {
	return &profileModel.TeacherProfileModel{
		Subjects:       CleanList(r.Subjects),
		Qualifications: CleanList(r.Qualifications),
		Experience:     r.Experience,
		HourlyRate:     r.HourlyRate,
		TeachingMode:   r.TeachingMode,
		Location:       trimPtr(r.Location),
		Languages:      CleanList(r.Languages),
		Availability:   r.Availability,
	}
}

func (r StudentProfileRequest) ToModel() *profileModel.StudentProfileModel {
	return &profileModel.StudentProfileModel{
		GradeLevel:        strings.TrimSpace(r.GradeLevel),
		Interests:         CleanList(r.Interests),
		LearningGoals:     CleanList(r.LearningGoals),
		PreferredSubjects: CleanList(r.PreferredSubjects),
		Budget:            r.Budget,
		Location:          trimPtr(r.Location),
	}
}

func (r SchoolProfileRequest) ToModel() *profileModel.SchoolProfileModel {
	return &profileModel.SchoolProfileModel{
		SchoolName:      strings.TrimSpace(r.SchoolName),
		SchoolType:      strings.ToLower(strings.TrimSpace(r.SchoolType)),
		Address:         trimPtr(r.Address),
		City:            strings.TrimSpace(r.City),
		Country:         strings.TrimSpace(r.Country),
		Website:         trimPtr(r.Website),
		Phone:           trimPtr(r.Phone),
		Facilities:      CleanList(r.Facilities),
		Programs:        CleanList(r.Programs),
		StudentCount:    r.StudentCount,
		EstablishedYear: r.EstablishedYear,
		SocialLinks:     r.SocialLinks,
	}
}
