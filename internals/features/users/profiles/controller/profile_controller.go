package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teecha_backend/internals/constants"
	"teecha_backend/internals/features/users/profiles/dto"
	profileModel "teecha_backend/internals/features/users/profiles/model"
	"teecha_backend/internals/features/users/profiles/repository"
	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type ProfileController struct {
	Repo *repository.ProfileRepository
}

func NewProfileController(repo *repository.ProfileRepository) *ProfileController {
	return &ProfileController{Repo: repo}
}

func (pc *ProfileController) caller(c *fiber.Ctx) (helperAuth.AuthContext, error) {
	ac, ok := helperAuth.FromContext(c)
	if !ok {
		return ac, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return ac, nil
}

// GET /api/profile/me
func (pc *ProfileController) GetMyProfile(c *fiber.Ctx) error {
	ac, err := pc.caller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := pc.Repo.FindUser(c.UserContext(), ac.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	} else if err != nil {
		return err
	}
	profile, err := pc.Repo.FindProfile(c.UserContext(), user.ID, user.Role)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ProfileResponse{
		User:             user,
		Profile:          profile,
		HasProfile:       profile != nil,
		ProfileCompleted: user.ProfileCompleted,
	})
}

// GET /api/profile/status
func (pc *ProfileController) GetStatus(c *fiber.Ctx) error {
	ac, err := pc.caller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := pc.Repo.FindUser(c.UserContext(), ac.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	} else if err != nil {
		return err
	}
	profile, err := pc.Repo.FindProfile(c.UserContext(), user.ID, user.Role)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ProfileStatusResponse{
		HasProfile:         profile != nil,
		IsProfileCompleted: isCompleted(profile),
		ProfileCompleted:   user.ProfileCompleted,
		Role:               user.Role,
	})
}

func isCompleted(profile any) bool {
	switch p := profile.(type) {
	case *profileModel.TeacherProfileModel:
		return p.IsCompleted
	case *profileModel.StudentProfileModel:
		return p.IsCompleted
	case *profileModel.SchoolProfileModel:
		return p.IsCompleted
	}
	return false
}

func (pc *ProfileController) requireRole(c *fiber.Ctx, role string) (helperAuth.AuthContext, error) {
	ac, err := pc.caller(c)
	if err != nil {
		return ac, err
	}
	if ac.Role != role {
		return ac, fiber.NewError(fiber.StatusForbidden, constants.RoleError("this profile", role))
	}
	return ac, nil
}

// PUT /api/profile/teacher
func (pc *ProfileController) UpsertTeacher(c *fiber.Ctx) error {
	ac, err := pc.requireRole(c, constants.RoleTeacher)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.TeacherProfileRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	p := req.ToModel()
	p.UserID = ac.UserID
	if err := pc.Repo.UpsertTeacher(c.UserContext(), p); err != nil {
		return err
	}
	return helper.JsonOK(c, "Teacher profile saved", fiber.Map{"profile": p, "profileCompleted": true})
}

// PUT /api/profile/student
func (pc *ProfileController) UpsertStudent(c *fiber.Ctx) error {
	ac, err := pc.requireRole(c, constants.RoleStudent)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.StudentProfileRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	p := req.ToModel()
	p.UserID = ac.UserID
	if err := pc.Repo.UpsertStudent(c.UserContext(), p); err != nil {
		return err
	}
	return helper.JsonOK(c, "Student profile saved", fiber.Map{"profile": p, "profileCompleted": true})
}

// PUT /api/profile/school
func (pc *ProfileController) UpsertSchool(c *fiber.Ctx) error {
	ac, err := pc.requireRole(c, constants.RoleSchool)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SchoolProfileRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	p := req.ToModel()
	p.UserID = ac.UserID
	if err := pc.Repo.UpsertSchool(c.UserContext(), p); err != nil {
		return err
	}
	return helper.JsonOK(c, "School profile saved", fiber.Map{"profile": p, "profileCompleted": true})
}

// PUT /api/profile/basic
func (pc *ProfileController) UpdateBasic(c *fiber.Ctx) error {
	ac, err := pc.caller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.BasicProfileRequest
	if ok, err := helper.ParseBody(c, &req); !ok {
		return err
	}
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return helper.JsonValidationError(c, map[string][]string{"name": {"name is required"}})
		}
		fields["name"] = name
	}
	if req.Bio != nil {
		fields["bio"] = strings.TrimSpace(*req.Bio)
	}
	if err := pc.Repo.UpdateBasic(c.UserContext(), ac.UserID, fields); err != nil {
		return err
	}
	user, err := pc.Repo.FindUser(c.UserContext(), ac.UserID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Profile updated", fiber.Map{"user": user})
}

// GET /api/profile/:userId
func (pc *ProfileController) GetPublicProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	user, err := pc.Repo.FindUser(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	} else if err != nil {
		return err
	}
	profile, err := pc.Repo.FindProfile(c.UserContext(), user.ID, user.Role)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.PublicProfileResponse{User: user.Summary(), Bio: user.Bio, Profile: profile})
}
