package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"teecha_backend/internals/configs"
	authCtrl "teecha_backend/internals/features/users/auth/controller"
	authRepo "teecha_backend/internals/features/users/auth/repository"
	authService "teecha_backend/internals/features/users/auth/service"
	profileRepo "teecha_backend/internals/features/users/profiles/repository"
	helperAuth "teecha_backend/internals/helpers/auth"
	"teecha_backend/internals/helpers/mailer"
	authMw "teecha_backend/internals/middlewares/auth"
	routeDetails "teecha_backend/internals/route/details"
)

var startTime = time.Now()

// NewBlacklist prefers Redis and falls back to the token_blacklist table.
func NewBlacklist(db *gorm.DB, rdb *redis.Client) helperAuth.Blacklist {
	if rdb != nil {
		return helperAuth.NewRedisBlacklist(rdb, configs.JWTSecret)
	}
	return helperAuth.NewGormBlacklist(db, configs.JWTSecret)
}

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	startTime = time.Now()
	BaseRoutes(app, db)

	blacklist := NewBlacklist(db, rdb)
	svc := &authService.AuthService{
		Users:       authRepo.NewUserRepository(db),
		Tokens:      authService.NewTokenService(configs.JWTSecret, configs.JWTRefreshSecret),
		Mailer:      mailer.New(),
		Blacklist:   blacklist,
		Google:      authService.NewGoogleVerifier(configs.GoogleClientID),
		FrontendURL: configs.FrontendURL,
		MailTimeout: time.Duration(configs.GetEnvInt("MAIL_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	profiles := profileRepo.NewProfileRepository(db)

	jwt := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		Blacklist:           blacklist,
		AllowCookieFallback: true,
	})
	gated := []fiber.Handler{jwt, authMw.RequireCompletedProfile(profiles)}

	api := app.Group("/api")

	// ===================== AUTH / PROFILE (no gate) =====================
	log.Println("[INFO] Setting up auth and profile routes...")
	routeDetails.AccountRoutes(api, authCtrl.NewAuthController(svc), profiles, jwt)

	// ===================== GATED =====================
	log.Println("[INFO] Mounting social routes...")
	routeDetails.SocialRoutes(api, db, gated...)

	log.Println("[INFO] Mounting directory routes...")
	routeDetails.DirectoryRoutes(api, db, gated...)

	log.Println("[INFO] Mounting upload routes...")
	routeDetails.UploadRoutes(api, profiles, jwt, gated)
}
