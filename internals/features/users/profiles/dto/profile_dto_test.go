package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	helper "teecha_backend/internals/helpers"
)

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"Math", "Physics"}, CleanList([]string{" Math ", "", "math", "Physics"}))
	assert.Empty(t, CleanList(nil))
}

func TestTeacherProfileValidation(t *testing.T) {
	errs := helper.ValidateStruct(&TeacherProfileRequest{TeachingMode: "hybrid"})
	assert.Contains(t, errs, "subjects")
	assert.Contains(t, errs, "teachingMode")

	ok := helper.ValidateStruct(&TeacherProfileRequest{Subjects: []string{"Math"}, TeachingMode: "online", Experience: 3})
	assert.Nil(t, ok)
}

func TestSchoolProfileToModel(t *testing.T) {
	blank := "  "
	m := SchoolProfileRequest{SchoolName: " Green Hill ", SchoolType: "Private", City: "Nairobi", Country: "Kenya", Website: &blank}.ToModel()
	assert.Equal(t, "Green Hill", m.SchoolName)
	assert.Equal(t, "private", m.SchoolType)
	assert.Nil(t, m.Website)
}
