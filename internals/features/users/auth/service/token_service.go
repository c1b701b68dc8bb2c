// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/sha256"
	"errors"
	"time"

	"onboardku_backend/internals/configs"
	authmodel "onboardku_backend/internals/features/users/auth/model"
	usermodel "onboardku_backend/internals/features/users/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// BuildAccessToken signs a short-lived access JWT carrying identity claims
// the auth middleware re-reads on every request.
func BuildAccessToken(user *usermodel.UserModel, role string) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("missing JWT secret")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.FullName(),
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// BuildRefreshToken signs the long-lived refresh JWT (separate secret).
func BuildRefreshToken(userID uuid.UUID) (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("missing JWT refresh secret")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
}

// HashRefreshToken is what actually lands in the refresh_tokens table.
func HashRefreshToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

func StoreRefreshToken(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID, token string) error {
	ua := c.Get("User-Agent")
	ip := c.IP()
	row := authmodel.RefreshTokenModel{
		UserID:    userID,
		TokenHash: HashRefreshToken(token),
		ExpiresAt: time.Now().UTC().Add(RefreshTokenTTL),
	}
	if ua != "" {
		row.UserAgent = &ua
	}
	if ip != "" {
		row.IP = &ip
	}
	return db.Create(&row).Error
}

// FindActiveRefreshToken rejects revoked and expired rows.
func FindActiveRefreshToken(db *gorm.DB, token string) (*authmodel.RefreshTokenModel, error) {
	var row authmodel.RefreshTokenModel
	err := db.
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > NOW()", HashRefreshToken(token)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func RevokeRefreshToken(db *gorm.DB, id uuid.UUID) error {
	now := time.Now().UTC()
	return db.Model(&authmodel.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

func RevokeAllRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	now := time.Now().UTC()
	return db.Model(&authmodel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// BlacklistAccessToken keeps a logged-out access token dead until it would
// have expired anyway.
func BlacklistAccessToken(db *gorm.DB, token string) error {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	expiredAt := time.Now().UTC().Add(AccessTokenTTL)
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0).UTC()
		}
	}
	return db.Create(&authmodel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}).Error
}

// SetRefreshCookie mirrors the refresh TTL on an httpOnly cookie.
func SetRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().UTC().Add(RefreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
}

func ClearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
}
