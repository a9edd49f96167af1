package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "teecha_backend/internals/helpers"
	helperAuth "teecha_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	Blacklist           helperAuth.Blacklist // optional
	AllowCookieFallback bool                 // use the access_token cookie when there is no Bearer header
}

type accessClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Typ  string `json:"typ"`
	jwt.RegisteredClaims
}

// AuthJWT verifies the access token and stores a typed AuthContext.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No token provided, authorization denied")
		}

		claims := &accessClaims{}
		tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid || claims.Typ != "access" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token is not valid")
		}
		userID, err := uuid.Parse(claims.ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		if o.Blacklist != nil {
			revoked, err := o.Blacklist.IsBlacklisted(c.UserContext(), raw)
			if err != nil {
				log.Printf("[AUTH] blacklist check failed: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
			}
			if revoked {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Token has been revoked")
			}
		}

		helper.SetRawAccessToken(c, raw)
		helperAuth.SetContext(c, helperAuth.AuthContext{UserID: userID, Role: claims.Role})
		return c.Next()
	}
}
