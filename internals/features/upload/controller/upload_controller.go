package controller

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
	helperOSS "teecha_backend/internals/helpers/oss"
)

// PictureStore persists a user's avatar URL.
type PictureStore interface {
	SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) error
}

type UploadController struct {
	Host     func() (helperOSS.ImageHost, error)
	Pictures PictureStore
}

func NewUploadController(host func() (helperOSS.ImageHost, error), pictures PictureStore) *UploadController {
	return &UploadController{Host: host, Pictures: pictures}
}

const formField = "image"

// upload runs the shared multipart path and writes the error response itself.
func (uc *UploadController) upload(c *fiber.Ctx, dir string, opt helperOSS.WebPOptions) (string, bool, error) {
	fh, err := c.FormFile(formField)
	if err != nil || fh == nil {
		return "", false, helper.JsonError(c, fiber.StatusBadRequest, "No image file provided")
	}
	if fh.Size > helperOSS.MaxUploadSize {
		return "", false, helper.JsonError(c, fiber.StatusBadRequest, "Image must be 5MB or smaller")
	}
	host, err := uc.Host()
	if err != nil {
		log.Printf("[UPLOAD] image host unavailable: %v", err)
		return "", false, helper.JsonError(c, fiber.StatusInternalServerError, "Image upload is not available")
	}
	url, err := host.UploadImage(c.UserContext(), fh, dir, opt)
	switch {
	case err == nil:
		return url, true, nil
	case errors.Is(err, helperOSS.ErrUnsupportedFormat):
		return "", false, helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Unsupported image format")
	case errors.Is(err, helperOSS.ErrFileTooLarge):
		return "", false, helper.JsonError(c, fiber.StatusBadRequest, "Image must be 5MB or smaller")
	}
	log.Printf("[UPLOAD] upload failed: %v", err)
	return "", false, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload image")
}

// POST /api/upload/profile-picture
func (uc *UploadController) ProfilePicture(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	url, ok, err := uc.upload(c, "avatars/"+me.String(), helperOSS.AvatarWebPOptions())
	if !ok {
		return err
	}
	if err := uc.Pictures.SetProfilePicture(c.UserContext(), me, url); err != nil {
		return err
	}
	return helper.JsonOK(c, "Profile picture updated", fiber.Map{"url": url, "profilePicture": url})
}

// POST /api/upload/image
func (uc *UploadController) Image(c *fiber.Ctx) error {
	me, err := helperAuth.MustUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	url, ok, err := uc.upload(c, "images/"+me.String(), helperOSS.DefaultWebPOptions())
	if !ok {
		return err
	}
	return helper.JsonOK(c, "Image uploaded", fiber.Map{"url": url})
}
